package jobs

import (
	"time"

	"go.uber.org/zap"

	"github.com/snapgather/snapgather-backend/internal/repository"
	"github.com/snapgather/snapgather-backend/pkg/storage"
)

// Blobs younger than this are skipped: an in-flight upload stores the blob
// before inserting its metadata row, and the sweep must not race that gap.
const orphanGracePeriod = 1 * time.Hour

// OrphanSweepJob periodically reconciles the blob store against photo
// metadata. The store-then-record upload sequence is not atomic, so a crash
// between the two steps leaves a blob with no referencing row; this job
// deletes those.
type OrphanSweepJob struct {
	photoRepo *repository.PhotoRepository
	storage   storage.StorageService
	logger    *zap.Logger
	ticker    *time.Ticker
	done      chan bool
}

func NewOrphanSweepJob(photoRepo *repository.PhotoRepository, blobStorage storage.StorageService, logger *zap.Logger, interval time.Duration) *OrphanSweepJob {
	return &OrphanSweepJob{
		photoRepo: photoRepo,
		storage:   blobStorage,
		logger:    logger,
		ticker:    time.NewTicker(interval),
		done:      make(chan bool),
	}
}

func (j *OrphanSweepJob) Start() {
	j.logger.Info("orphan sweep job started")

	go func() {
		j.sweep()

		for {
			select {
			case <-j.ticker.C:
				j.sweep()
			case <-j.done:
				j.logger.Info("orphan sweep job stopped")
				return
			}
		}
	}()
}

func (j *OrphanSweepJob) Stop() {
	j.ticker.Stop()
	j.done <- true
}

func (j *OrphanSweepJob) sweep() {
	objects, err := j.storage.List("")
	if err != nil {
		j.logger.Error("orphan sweep: failed to list storage objects", zap.Error(err))
		return
	}

	var removed int
	for _, obj := range objects {
		if time.Since(obj.LastModified) < orphanGracePeriod {
			continue
		}

		exists, err := j.photoRepo.FilePathExists(obj.Key)
		if err != nil {
			j.logger.Error("orphan sweep: failed to check photo record", zap.String("key", obj.Key), zap.Error(err))
			continue
		}
		if exists {
			continue
		}

		if err := j.storage.Delete(obj.Key); err != nil {
			j.logger.Warn("orphan sweep: failed to delete orphaned blob", zap.String("key", obj.Key), zap.Error(err))
			continue
		}
		removed++
	}

	if removed > 0 {
		j.logger.Info("orphan sweep completed", zap.Int("removed", removed))
	}
}
