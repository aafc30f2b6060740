package buildrun

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"texlab.dev/core/internal/config"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestManagerRunSuccess(t *testing.T) {
	m := NewManager(zap.NewNop(), 2)
	defer m.Close()

	job := m.Start(context.Background(), config.BuildOptions{Executable: "true"}, "doc.tex")
	require.NotEmpty(t, job.ID)
	assert.Equal(t, StatusSuccess, job.Status)
	assert.Empty(t, job.Errors)
}

func TestManagerRunFailure(t *testing.T) {
	m := NewManager(zap.NewNop(), 2)
	defer m.Close()

	job := m.Start(context.Background(), config.BuildOptions{Executable: "false"}, "doc.tex")
	assert.Equal(t, StatusFailure, job.Status)
	assert.Error(t, job.Err)
}

func TestManagerCancel(t *testing.T) {
	m := NewManager(zap.NewNop(), 1)
	defer m.Close()

	done := make(chan *Job, 1)
	go func() {
		done <- m.Start(context.Background(), config.BuildOptions{Executable: "sleep", Args: []string{"5"}}, "doc.tex")
	}()

	// Give the goroutine time to register its cancel func before we
	// look it up by scanning for a non-empty job ID.
	var id string
	for i := 0; i < 100 && id == ""; i++ {
		m.mu.Lock()
		for k := range m.cancel {
			id = k
		}
		m.mu.Unlock()
		if id == "" {
			time.Sleep(10 * time.Millisecond)
		}
	}
	require.NotEmpty(t, id)
	assert.True(t, m.Cancel(id))

	select {
	case job := <-done:
		assert.Equal(t, StatusCancelled, job.Status)
	case <-time.After(2 * time.Second):
		t.Fatal("build did not observe cancellation")
	}
}

func TestSubstitute(t *testing.T) {
	assert.Equal(t, "main.tex", substitute("%f", "main.tex"))
	assert.Equal(t, "-pdf", substitute("-pdf", "main.tex"))
}
