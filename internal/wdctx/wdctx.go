// Package wdctx provides scoped mutation of the process working directory
// and environment, restored on every exit path including a panic. Go has
// no destructors, so the RAII push-on-construct/pop-on-destruct pattern
// becomes push-then-defer-pop (spec.md §5: "Scoped acquisition of the
// working-directory context... required so that any failure leaves the
// caller's current directory restored").
package wdctx

import "os"

// PushDir changes the process working directory to dir and returns a
// restore function that changes it back. Callers are expected to
// `defer restore()` immediately.
func PushDir(dir string) (restore func() error, err error) {
	original, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	if err := os.Chdir(dir); err != nil {
		return nil, err
	}
	return func() error {
		return os.Chdir(original)
	}, nil
}

// PushEnv sets the given environment variables and returns a restore
// function that puts every overwritten or newly-set variable back to its
// prior state (unset, if it was previously unset).
func PushEnv(env map[string]string) (restore func(), err error) {
	type saved struct {
		value string
		was   bool
	}
	prior := make(map[string]saved, len(env))
	for k := range env {
		v, ok := os.LookupEnv(k)
		prior[k] = saved{value: v, was: ok}
	}
	for k, v := range env {
		if err := os.Setenv(k, v); err != nil {
			// best-effort rollback of whatever was already set before failing
			for done, sv := range prior {
				if sv.was {
					os.Setenv(done, sv.value)
				} else {
					os.Unsetenv(done)
				}
			}
			return nil, err
		}
	}
	return func() {
		for k, sv := range prior {
			if sv.was {
				os.Setenv(k, sv.value)
			} else {
				os.Unsetenv(k)
			}
		}
	}, nil
}
