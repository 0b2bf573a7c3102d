package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"assurdoc/internal/analysis"
	"assurdoc/internal/cache"
	"assurdoc/internal/config"
	"assurdoc/internal/domain"
	"assurdoc/internal/metrics"
	"assurdoc/internal/ocr"
	"assurdoc/internal/port"
	"assurdoc/internal/queue"
	"assurdoc/internal/routing"
)

// UploadedFile is one file of a submitted demande, already read into memory.
type UploadedFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// AnalysisService is the entry point of the engine: it accepts demandes,
// runs them through the asynchronous pipeline and serves results.
type AnalysisService interface {
	Submit(ctx context.Context, demandeID string, files []UploadedFile) (taskID string, err error)
	TaskStatus(taskID string) (queue.Task, error)
	Get(ctx context.Context, demandeID string) (*domain.DemandeAnalysis, error)
	ListByInsurer(ctx context.Context, insurerID string, avis string, offset, limit int) ([]domain.DemandeAnalysis, int, error)
	Notifications(ctx context.Context, demandeID string) ([]domain.InsurerNotification, error)
}

type analysisService struct {
	engine       *ocr.Engine
	pipeline     *analysis.Pipeline
	queue        *queue.Queue
	cache        *cache.AnalysisCache
	analysisRepo port.AnalysisRepository
	insurerRepo  port.InsurerRepository
	notifRepo    port.NotificationRepository
	storage      port.DocumentStorage
	notifier     port.AnalysisNotifier
	s3cfg        config.S3Config
}

// NewAnalysisService wires the engine together. The returned service owns
// the queue handler; callers still have to run the queue via its Start.
func NewAnalysisService(
	engine *ocr.Engine,
	pipeline *analysis.Pipeline,
	analysisCache *cache.AnalysisCache,
	analysisRepo port.AnalysisRepository,
	insurerRepo port.InsurerRepository,
	notifRepo port.NotificationRepository,
	storage port.DocumentStorage,
	notifier port.AnalysisNotifier,
	queueCfg config.QueueConfig,
	s3cfg config.S3Config,
) (AnalysisService, *queue.Queue) {
	s := &analysisService{
		engine:       engine,
		pipeline:     pipeline,
		cache:        analysisCache,
		analysisRepo: analysisRepo,
		insurerRepo:  insurerRepo,
		notifRepo:    notifRepo,
		storage:      storage,
		notifier:     notifier,
		s3cfg:        s3cfg,
	}
	q := queue.New(queue.Config{
		Workers:       queueCfg.Workers,
		Capacity:      queueCfg.Capacity,
		TaskTimeout:   time.Duration(queueCfg.TaskTimeoutSecs) * time.Second,
		RetentionTTL:  time.Duration(queueCfg.RetentionTTLSecs) * time.Second,
		SweepInterval: time.Duration(queueCfg.SweepIntervalSecs) * time.Second,
	}, s.runAnalysis)
	s.queue = q
	return s, q
}

func (s *analysisService) Submit(ctx context.Context, demandeID string, files []UploadedFile) (string, error) {
	if len(files) == 0 {
		return "", domain.ErrNoDocuments
	}

	maxBytes := s.s3cfg.MaxFileSizeMB * 1024 * 1024
	docs := make([]domain.RawDocument, 0, len(files))
	for _, f := range files {
		if maxBytes > 0 && int64(len(f.Data)) > maxBytes {
			return "", fmt.Errorf("%w: %s", domain.ErrFileTooLarge, f.Filename)
		}
		doc, err := s.engine.Extract(ctx, f.Filename, f.Data)
		if err != nil {
			return "", err
		}
		docs = append(docs, doc)
	}

	// Keep the originals for audit. Storage trouble never blocks the
	// analysis.
	s.storeFiles(ctx, demandeID, files)

	taskID, err := s.queue.Enqueue(demandeID, docs)
	if err != nil {
		return "", err
	}
	return taskID, nil
}

func (s *analysisService) storeFiles(ctx context.Context, demandeID string, files []UploadedFile) {
	if s.storage == nil {
		return
	}
	for _, f := range files {
		_, err := s.storage.Store(ctx, port.StoreInput{
			Bucket:      s.s3cfg.Bucket,
			Key:         fmt.Sprintf("demandes/%s/%s", demandeID, f.Filename),
			Body:        bytes.NewReader(f.Data),
			ContentType: f.ContentType,
			Size:        int64(len(f.Data)),
		})
		if err != nil {
			log.Printf("analysisService: storing %s for demande %s: %v", f.Filename, demandeID, err)
		}
	}
}

func (s *analysisService) TaskStatus(taskID string) (queue.Task, error) {
	return s.queue.Status(taskID)
}

func (s *analysisService) Get(ctx context.Context, demandeID string) (*domain.DemandeAnalysis, error) {
	if a, ok := s.cache.Get(demandeID); ok {
		metrics.CacheRequestsTotal.WithLabelValues("hit").Inc()
		return a, nil
	}
	metrics.CacheRequestsTotal.WithLabelValues("miss").Inc()

	a, err := s.analysisRepo.GetByDemandeID(ctx, demandeID)
	if err != nil {
		return nil, err
	}
	s.cache.Set(demandeID, a)
	return a, nil
}

func (s *analysisService) ListByInsurer(ctx context.Context, insurerID string, avis string, offset, limit int) ([]domain.DemandeAnalysis, int, error) {
	id, err := uuid.Parse(insurerID)
	if err != nil {
		return nil, 0, domain.ErrInsurerNotFound
	}
	if avis != "" && !domain.ValidAvis(avis) {
		return nil, 0, domain.ErrInvalidAvisFilter
	}
	return s.analysisRepo.ListByInsurer(ctx, id, avis, offset, limit)
}

func (s *analysisService) Notifications(ctx context.Context, demandeID string) ([]domain.InsurerNotification, error) {
	return s.notifRepo.ListByDemande(ctx, demandeID)
}

// runAnalysis is the queue handler: the full pipeline for one demande.
func (s *analysisService) runAnalysis(ctx context.Context, demandeID string, docs []domain.RawDocument) (*domain.DemandeAnalysis, error) {
	// A demande already analyzed is served from cache, not re-scored.
	if demandeID != "" {
		if a, ok := s.cache.Get(demandeID); ok {
			metrics.CacheRequestsTotal.WithLabelValues("hit").Inc()
			return a, nil
		}
	}

	start := time.Now()
	result, err := s.pipeline.AnalyzeDemande(demandeID, docs)
	if err != nil {
		metrics.QueueTasksTotal.WithLabelValues(string(queue.StatusError)).Inc()
		return nil, err
	}
	metrics.AnalysisDuration.Observe(time.Since(start).Seconds())
	metrics.AnalysesTotal.WithLabelValues(string(result.Avis)).Inc()
	metrics.FraudSignalsTotal.Add(float64(len(result.SignauxFraude)))

	s.route(ctx, result)

	// Persistence is best-effort: the analysis stands even when the
	// database is down, it just stops being durable.
	if err := s.analysisRepo.Save(ctx, result); err != nil {
		log.Printf("analysisService: saving analysis %s: %v", result.DemandeID, err)
	}

	s.cache.Set(result.DemandeID, result)
	metrics.QueueTasksTotal.WithLabelValues(string(queue.StatusDone)).Inc()
	return result, nil
}

// route matches insurers and emits one notification record per match.
func (s *analysisService) route(ctx context.Context, a *domain.DemandeAnalysis) {
	insurers, err := s.insurerRepo.List(ctx)
	if err != nil {
		log.Printf("analysisService: listing insurers for demande %s: %v", a.DemandeID, err)
		return
	}
	matched := routing.Match(a, insurers)
	if len(matched) == 0 {
		log.Printf("analysisService: no insurer for demande %s", a.DemandeID)
		return
	}

	for _, ins := range matched {
		a.AssureurIDs = append(a.AssureurIDs, ins.ID)

		n := &domain.InsurerNotification{
			DemandeID: a.DemandeID,
			InsurerID: ins.ID,
			Nom:       ins.Nom,
			Status:    domain.NotificationPending,
			Method:    "email",
		}
		if err := s.notifRepo.Create(ctx, n); err != nil {
			log.Printf("analysisService: recording notification for %s: %v", ins.Nom, err)
		}

		status := domain.NotificationSent
		if err := s.notifier.NotifyInsurer(ctx, ins, a); err != nil {
			log.Printf("analysisService: notifying %s for demande %s: %v", ins.Nom, a.DemandeID, err)
			status = domain.NotificationFailed
		}
		metrics.NotificationsTotal.WithLabelValues(string(status)).Inc()
		if err := s.notifRepo.UpdateStatus(ctx, n.ID, status); err != nil {
			log.Printf("analysisService: updating notification %s: %v", n.ID, err)
		}
	}
}
