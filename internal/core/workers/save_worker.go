package workers

import (
	"context"
	"log"

	"github.com/alessiogreco/weekblocks/internal/core/domain"
)

// SaveWorker flushes aggregate snapshots to the store off the request path.
// Persistence is fire-and-forget: a failed save is reported through OnError
// and the tracker keeps operating in memory for the session.
type SaveWorker struct {
	store domain.TrackerStore
	jobs  chan *domain.TrackerState

	// OnError receives swallowed save failures. Defaults to log.Printf.
	OnError func(error)
}

func NewSaveWorker(store domain.TrackerStore) *SaveWorker {
	return &SaveWorker{
		store: store,
		jobs:  make(chan *domain.TrackerState, 100),
		OnError: func(err error) {
			log.Printf("Save Worker: persistence failed: %v", err)
		},
	}
}

func (w *SaveWorker) Start(ctx context.Context) {
	go func() {
		log.Println("Save Worker started in background...")
		for {
			select {
			case snapshot := <-w.jobs:
				if err := w.store.Save(ctx, snapshot); err != nil {
					w.OnError(err)
				}
			case <-ctx.Done():
				log.Println("Save Worker shutting down...")
				return
			}
		}
	}()
}

// Enqueue accepts a snapshot for persistence. The snapshot must not be
// mutated afterwards by the caller. When the queue is full the snapshot is
// dropped: a later mutation will enqueue a fresher aggregate anyway.
func (w *SaveWorker) Enqueue(snapshot *domain.TrackerState) {
	select {
	case w.jobs <- snapshot:
	default:
		log.Println("Save Worker queue full! Dropping snapshot")
	}
}
