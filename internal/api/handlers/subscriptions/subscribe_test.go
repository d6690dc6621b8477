package subscriptions

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Chatty/internal/api/middleware"
	"Chatty/internal/core/graph"
)

// stubGraphService implements graph.Service with overridable funcs
type stubGraphService struct {
	subscribeFunc   func(ctx context.Context, followerID, followeeID int64) (*graph.FollowEdge, error)
	unsubscribeFunc func(ctx context.Context, followerID, followeeID int64) error
	followees       []int64
	followers       []int64
}

func (s *stubGraphService) Subscribe(ctx context.Context, followerID, followeeID int64) (*graph.FollowEdge, error) {
	if s.subscribeFunc != nil {
		return s.subscribeFunc(ctx, followerID, followeeID)
	}
	return &graph.FollowEdge{FollowerID: followerID, FolloweeID: followeeID}, nil
}

func (s *stubGraphService) Unsubscribe(ctx context.Context, followerID, followeeID int64) error {
	if s.unsubscribeFunc != nil {
		return s.unsubscribeFunc(ctx, followerID, followeeID)
	}
	return nil
}

func (s *stubGraphService) ListFollowees(ctx context.Context, userID int64) ([]int64, error) {
	return s.followees, nil
}

func (s *stubGraphService) ListFollowers(ctx context.Context, userID int64) ([]int64, error) {
	return s.followers, nil
}

func (s *stubGraphService) ListSubscriptions(ctx context.Context, userID int64) ([]*graph.FollowEdge, error) {
	return nil, nil
}

// doRequest routes the request through chi so path params resolve, with an
// authenticated user injected unless userID is 0
func doRequest(t *testing.T, register func(r chi.Router), method, target string, userID int64) *httptest.ResponseRecorder {
	t.Helper()

	r := chi.NewRouter()
	register(r)

	req := httptest.NewRequest(method, target, nil)
	if userID != 0 {
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandleSubscribe_Success(t *testing.T) {
	h := NewSubscribeHandler(&stubGraphService{})

	rec := doRequest(t, func(r chi.Router) {
		r.Post("/subscriptions/subscribe/{userID}", h.HandleSubscribe)
	}, http.MethodPost, "/subscriptions/subscribe/2", 1)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Subscribed successfully", body["detail"])
}

func TestHandleSubscribe_SelfFollow(t *testing.T) {
	h := NewSubscribeHandler(&stubGraphService{
		subscribeFunc: func(ctx context.Context, followerID, followeeID int64) (*graph.FollowEdge, error) {
			return nil, graph.ErrSelfFollow
		},
	})

	rec := doRequest(t, func(r chi.Router) {
		r.Post("/subscriptions/subscribe/{userID}", h.HandleSubscribe)
	}, http.MethodPost, "/subscriptions/subscribe/1", 1)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleSubscribe_Duplicate(t *testing.T) {
	h := NewSubscribeHandler(&stubGraphService{
		subscribeFunc: func(ctx context.Context, followerID, followeeID int64) (*graph.FollowEdge, error) {
			return nil, graph.ErrAlreadyFollowing
		},
	})

	rec := doRequest(t, func(r chi.Router) {
		r.Post("/subscriptions/subscribe/{userID}", h.HandleSubscribe)
	}, http.MethodPost, "/subscriptions/subscribe/2", 1)

	require.Equal(t, http.StatusConflict, rec.Code)

	var body APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "AlreadySubscribed", body.Error)
}

func TestHandleSubscribe_BadUserID(t *testing.T) {
	h := NewSubscribeHandler(&stubGraphService{})

	for _, target := range []string{
		"/subscriptions/subscribe/abc",
		"/subscriptions/subscribe/-4",
		"/subscriptions/subscribe/0",
	} {
		rec := doRequest(t, func(r chi.Router) {
			r.Post("/subscriptions/subscribe/{userID}", h.HandleSubscribe)
		}, http.MethodPost, target, 1)

		assert.Equalf(t, http.StatusBadRequest, rec.Code, "target %s", target)
	}
}

func TestHandleSubscribe_Unauthenticated(t *testing.T) {
	h := NewSubscribeHandler(&stubGraphService{})

	rec := doRequest(t, func(r chi.Router) {
		r.Post("/subscriptions/subscribe/{userID}", h.HandleSubscribe)
	}, http.MethodPost, "/subscriptions/subscribe/2", 0)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandleUnsubscribe_NotFound(t *testing.T) {
	h := NewSubscribeHandler(&stubGraphService{
		unsubscribeFunc: func(ctx context.Context, followerID, followeeID int64) error {
			return graph.ErrNotFollowing
		},
	})

	rec := doRequest(t, func(r chi.Router) {
		r.Delete("/subscriptions/unsubscribe/{userID}", h.HandleUnsubscribe)
	}, http.MethodDelete, "/subscriptions/unsubscribe/2", 1)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleFollowing_EmptyIsJSONArray(t *testing.T) {
	h := NewListHandler(&stubGraphService{})

	rec := doRequest(t, func(r chi.Router) {
		r.Get("/subscriptions/following", h.HandleFollowing)
	}, http.MethodGet, "/subscriptions/following", 1)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String(), "no followees must serialize as [], not null")
}

func TestHandleFollowers(t *testing.T) {
	h := NewListHandler(&stubGraphService{followers: []int64{3, 4}})

	rec := doRequest(t, func(r chi.Router) {
		r.Get("/subscriptions/followers", h.HandleFollowers)
	}, http.MethodGet, "/subscriptions/followers", 1)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[3,4]`, rec.Body.String())
}
