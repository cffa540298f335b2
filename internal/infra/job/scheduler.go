package job

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"

	"github.com/urbancruise/cruise-lms/internal/entity"
	"github.com/urbancruise/cruise-lms/internal/infra/http/middleware"
	"github.com/urbancruise/cruise-lms/internal/usecase"
)

// Scheduler drives the periodic work: the hourly and 30-minute lead
// polls, the daily summary email and the activity-log purge. Ticks are
// fire-and-forget relative to each other; the resolver's uniqueness
// check keeps overlapping polls harmless.
type Scheduler struct {
	cron        *cron.Cron
	sync        *usecase.SyncLeadsUseCase
	summary     *usecase.DailySummaryUseCase
	activityLog entity.ActivityLogRepositoryInterface
}

func NewScheduler(sync *usecase.SyncLeadsUseCase, summary *usecase.DailySummaryUseCase, activityLog entity.ActivityLogRepositoryInterface) *Scheduler {
	// Standard 5-field parser, panics in a job must not kill the timer.
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	c := cron.New(cron.WithParser(parser), cron.WithChain(cron.Recover(cron.DefaultLogger)))

	return &Scheduler{cron: c, sync: sync, summary: summary, activityLog: activityLog}
}

func (s *Scheduler) Start() error {
	// Hourly full sync.
	if _, err := s.cron.AddFunc("0 * * * *", func() {
		log.Println("🔄 Running scheduled lead fetch...")
		s.runSync()
		log.Println("🎉 Lead synchronization completed")
	}); err != nil {
		return err
	}

	// 30-minute "real-time" sync.
	if _, err := s.cron.AddFunc("*/30 * * * *", func() {
		log.Println("⚡ Running real-time lead sync...")
		s.runSync()
	}); err != nil {
		return err
	}

	// Daily summary at 9 AM IST (3:30 AM UTC).
	if _, err := s.cron.AddFunc("30 3 * * *", func() {
		log.Println("📊 Sending daily lead summary...")
		if _, err := s.summary.Execute(context.Background()); err != nil {
			log.Printf("❌ Daily summary error: %v", err)
			return
		}
		log.Println("✅ Daily summary sent successfully")
	}); err != nil {
		return err
	}

	// Activity-log entries expire 24h after creation.
	if _, err := s.cron.AddFunc("15 * * * *", func() {
		purged, err := s.activityLog.PurgeExpired(context.Background())
		if err != nil {
			log.Printf("❌ Activity log purge error: %v", err)
			return
		}
		if purged > 0 {
			log.Printf("🧹 Purged %d expired activity log entries", purged)
		}
	}); err != nil {
		return err
	}

	s.cron.Start()

	log.Println("🚀 Cron jobs initialized:")
	log.Println("   - Hourly lead sync: Every hour at :00")
	log.Println("   - Real-time sync: Every 30 minutes")
	log.Println("   - Daily summary: 9:00 AM IST daily")
	log.Println("   - Activity log purge: Every hour at :15")

	return nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

func (s *Scheduler) runSync() {
	for _, result := range s.sync.RunAll(context.Background()) {
		middleware.RecordIngest(result.Source, result.Imported, result.Skipped)
		log.Printf("✅ %s", result.Message)
	}
}
