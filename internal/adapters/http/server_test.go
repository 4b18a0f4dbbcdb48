package http_test

import (
	"context"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	adapterhttp "github.com/manganova/api/internal/adapters/http"
)

func TestServerConfig_Address(t *testing.T) {
	config := &adapterhttp.ServerConfig{Host: "127.0.0.1", Port: "9000"}
	assert.Equal(t, "127.0.0.1:9000", config.Address())
}

func TestDefaultServerConfig(t *testing.T) {
	config := adapterhttp.DefaultServerConfig()

	assert.Equal(t, "0.0.0.0:8080", config.Address())
	assert.Equal(t, 30*time.Second, config.ShutdownTimeout)
}

func TestServer_RunWithContextStopsOnCancel(t *testing.T) {
	gin.SetMode(gin.TestMode)

	config := adapterhttp.DefaultServerConfig()
	config.Host = "127.0.0.1"
	config.Port = "0" // random free port

	server := adapterhttp.NewServer(config, gin.New())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- server.RunWithContext(ctx)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down after context cancellation")
	}
}
