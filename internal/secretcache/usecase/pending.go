package usecase

import "context"

// Pending is the handle of an asynchronous GetEncryptedSecret call. The result is
// delivered exactly once and can be read any number of times after Done closes.
type Pending struct {
	done  chan struct{}
	value string
	err   error
}

// Done returns a channel closed when the result is available.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the result is available or ctx is done. Cancelling ctx only
// stops the wait; the underlying operation carries on with its own context.
func (p *Pending) Wait(ctx context.Context) (string, error) {
	select {
	case <-p.done:
		return p.value, p.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// GetEncryptedSecretAsync runs GetEncryptedSecret on its own goroutine and returns
// immediately.
func GetEncryptedSecretAsync(ctx context.Context, uc SecretCacheUseCase) *Pending {
	p := &Pending{done: make(chan struct{})}
	go func() {
		defer close(p.done)
		p.value, p.err = uc.GetEncryptedSecret(ctx)
	}()
	return p
}
