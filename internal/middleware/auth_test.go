package middleware

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/finds-lab/backend/internal/entity"
	"github.com/finds-lab/backend/internal/model"
	"github.com/finds-lab/backend/internal/repository"
	"github.com/finds-lab/backend/pkg/testutil"
	"github.com/finds-lab/backend/pkg/xcontext"

	"github.com/stretchr/testify/require"
)

func apiKeyContext(authorization string) context.Context {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	req := httptest.NewRequest("POST", "/bot/finds", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}

	return xcontext.WithHTTPRequest(ctx, req)
}

func Test_AuthVerifier_APIKey(t *testing.T) {
	ctx := apiKeyContext("Bearer " + testutil.ApiKey1.Key)
	verifier := NewAuthVerifier().WithAPIKey(repository.NewAPIKeyRepository())

	newCtx, err := verifier.Middleware()(ctx)
	require.NoError(t, err)
	require.Equal(t, testutil.ApiKey1.Key, xcontext.RequestAPIKey(newCtx))

	// The successful request is recorded on the key.
	var key entity.APIKey
	tx := xcontext.DB(ctx).Take(&key, "id=?", testutil.ApiKey1.ID)
	require.NoError(t, tx.Error)
	require.NotNil(t, key.LastUsedAt)
}

func Test_AuthVerifier_APIKey_Inactive(t *testing.T) {
	ctx := apiKeyContext("Bearer " + testutil.ApiKey2.Key)
	verifier := NewAuthVerifier().WithAPIKey(repository.NewAPIKeyRepository())

	_, err := verifier.Middleware()(ctx)
	require.EqualError(t, err, "Invalid or missing API key")
}

func Test_AuthVerifier_APIKey_LegacyFallback(t *testing.T) {
	ctx := apiKeyContext("Bearer " + testutil.LegacyAPIKey)
	verifier := NewAuthVerifier().WithAPIKey(repository.NewAPIKeyRepository())

	newCtx, err := verifier.Middleware()(ctx)
	require.NoError(t, err)
	require.Equal(t, testutil.LegacyAPIKey, xcontext.RequestAPIKey(newCtx))
}

func Test_AuthVerifier_APIKey_Rejected(t *testing.T) {
	verifier := NewAuthVerifier().WithAPIKey(repository.NewAPIKeyRepository())

	for _, authorization := range []string{
		"",
		"Bearer unknown-key",
		"Basic " + testutil.ApiKey1.Key,
		testutil.ApiKey1.Key,
	} {
		_, err := verifier.Middleware()(apiKeyContext(authorization))
		require.EqualError(t, err, "Invalid or missing API key", "authorization %q", authorization)
	}
}

func Test_AuthVerifier_AccessToken(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	token, err := xcontext.TokenEngine(ctx).Generate(testutil.User1.ID, model.AccessToken{
		ID:   testutil.User1.ID,
		Role: string(testutil.User1.Role),
	})
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	ctx = xcontext.WithHTTPRequest(ctx, req)

	verifier := NewAuthVerifier().WithAccessToken()
	newCtx, err := verifier.Middleware()(ctx)
	require.NoError(t, err)
	require.Equal(t, testutil.User1.ID, xcontext.RequestUserID(newCtx))
}

func Test_AuthVerifier_Optional(t *testing.T) {
	ctx := testutil.MockContext()
	req := httptest.NewRequest("POST", "/finds", nil)
	ctx = xcontext.WithHTTPRequest(ctx, req)

	verifier := NewAuthVerifier().WithCookieSession().WithAccessToken().Optional()
	newCtx, err := verifier.Middleware()(ctx)
	require.NoError(t, err)
	require.Empty(t, xcontext.RequestUserID(newCtx))
}

func Test_AuthVerifier_RequiredWithoutCredentials(t *testing.T) {
	ctx := testutil.MockContext()
	req := httptest.NewRequest("GET", "/users/me", nil)
	ctx = xcontext.WithHTTPRequest(ctx, req)

	verifier := NewAuthVerifier().WithCookieSession().WithAccessToken()
	_, err := verifier.Middleware()(ctx)
	require.EqualError(t, err, "You need to authenticate before")
}
