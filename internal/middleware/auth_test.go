package middleware

import (
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"tangle_play_backend/internal/util"
	"tangle_play_backend/pkg/logger"
)

type stubActivityRepo struct {
	err   error
	calls chan string
}

func (s *stubActivityRepo) UpdateLastSeen(userID string) error {
	s.calls <- userID
	return s.err
}

func activityContext(claims *util.Claims) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/levels/tangle", nil)
	if claims != nil {
		c.Set("user", claims)
	}
	return c
}

func TestActivityMiddlewareRecordsUser(t *testing.T) {
	logger.Log = zap.NewNop()
	repo := &stubActivityRepo{calls: make(chan string, 1)}

	ActivityMiddleware(repo)(activityContext(&util.Claims{UserID: "u1"}))

	select {
	case got := <-repo.calls:
		require.Equal(t, "u1", got)
	case <-time.After(time.Second):
		t.Fatal("UpdateLastSeen was never called")
	}
}

func TestActivityMiddlewareLogsFailure(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	logger.Log = zap.New(core)
	repo := &stubActivityRepo{
		err:   errors.New("connection refused"),
		calls: make(chan string, 1),
	}

	ActivityMiddleware(repo)(activityContext(&util.Claims{UserID: "u1"}))
	<-repo.calls

	require.Eventually(t, func() bool {
		return logs.FilterMessage("failed to update user activity").Len() == 1
	}, time.Second, 10*time.Millisecond)
}

func TestActivityMiddlewareSkipsAnonymous(t *testing.T) {
	logger.Log = zap.NewNop()
	repo := &stubActivityRepo{calls: make(chan string, 1)}

	ActivityMiddleware(repo)(activityContext(nil))

	select {
	case <-repo.calls:
		t.Fatal("UpdateLastSeen called without claims")
	default:
	}
}
