package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	secretcacheDomain "github.com/allisson/secretcache/internal/secretcache/domain"
	"github.com/allisson/secretcache/internal/secretcache/usecase"
	usecaseMocks "github.com/allisson/secretcache/internal/secretcache/usecase/mocks"
)

func TestGetEncryptedSecretAsync(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockUseCase := &usecaseMocks.MockSecretCacheUseCase{}
		mockUseCase.On("GetEncryptedSecret", ctx).Return("Zm9v", nil).Once()

		pending := usecase.GetEncryptedSecretAsync(ctx, mockUseCase)
		<-pending.Done()

		value, err := pending.Wait(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Zm9v", value)

		// The result stays readable.
		again, err := pending.Wait(ctx)
		require.NoError(t, err)
		assert.Equal(t, value, again)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("Error", func(t *testing.T) {
		mockUseCase := &usecaseMocks.MockSecretCacheUseCase{}
		cause := secretcacheDomain.NewSourceError(errors.New("asset missing"))
		mockUseCase.On("GetEncryptedSecret", ctx).Return("", cause).Once()

		_, err := usecase.GetEncryptedSecretAsync(ctx, mockUseCase).Wait(ctx)
		assert.ErrorIs(t, err, secretcacheDomain.ErrSourceUnavailable)
	})

	t.Run("WaitCanceled", func(t *testing.T) {
		release := make(chan struct{})
		mockUseCase := &usecaseMocks.MockSecretCacheUseCase{}
		mockUseCase.On("GetEncryptedSecret", mock.Anything).
			Run(func(args mock.Arguments) { <-release }).
			Return("Zm9v", nil).
			Once()

		pending := usecase.GetEncryptedSecretAsync(ctx, mockUseCase)

		waitCtx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := pending.Wait(waitCtx)
		assert.ErrorIs(t, err, context.Canceled)

		close(release)
		value, err := pending.Wait(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Zm9v", value)
	})
}
