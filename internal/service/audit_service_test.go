package service

import (
	"errors"
	"testing"
	"time"

	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestRecordNeverBlocksWhenQueueIsFull(t *testing.T) {
	repo := &stubAuditRepo{block: make(chan struct{})}
	rec := NewAuditRecorder(repo, 2)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 50; i++ {
			rec.Record(model.AuditLog{Action: "X", Module: "test"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Record bloqueo con la cola llena")
	}

	close(repo.block)
	rec.Close()
}

func TestPersistenceFailureIsInvisible(t *testing.T) {
	repo := &stubAuditRepo{err: errors.New("tabla perdida")}
	rec := NewAuditRecorder(repo, 8)

	rec.Record(model.AuditLog{Action: "LOGIN", Module: "auth"})
	rec.Close()

	assert.Equal(t, 1, repo.count())
}

func TestCloseDrainsQueue(t *testing.T) {
	repo := &stubAuditRepo{}
	rec := NewAuditRecorder(repo, 32)

	for i := 0; i < 10; i++ {
		rec.Record(model.AuditLog{Action: "X", Module: "test"})
	}
	rec.Close()

	assert.Equal(t, 10, repo.count())
}

func TestRecordAfterCloseIsNoop(t *testing.T) {
	repo := &stubAuditRepo{}
	rec := NewAuditRecorder(repo, 8)
	rec.Close()

	rec.Record(model.AuditLog{Action: "X", Module: "test"})
	assert.Equal(t, 0, repo.count())
}
