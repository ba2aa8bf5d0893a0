package utils

import (
	"context"
	"log"
	"time"

	"coursebuilder/services"

	"github.com/robfig/cron/v3"
)

type courseAuditor interface {
	AuditBuildingCourses(ctx context.Context) ([]services.IntegrityFinding, error)
}

// InitializeIntegrityScheduler re-checks BUILDING courses on the given cron spec.
func InitializeIntegrityScheduler(spec string, auditor courseAuditor) (*cron.Cron, error) {
	log.Println("[INTEGRITY-SCHEDULER] Initializing course integrity scheduler...")

	c := cron.New()
	if _, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		RunIntegrityAudit(ctx, auditor)
	}); err != nil {
		return nil, err
	}

	c.Start()
	log.Printf("[INTEGRITY-SCHEDULER] Scheduler started - runs at %q", spec)
	return c, nil
}

// RunIntegrityAudit logs every BUILDING course that could not be published and
// returns how many were found.
func RunIntegrityAudit(ctx context.Context, auditor courseAuditor) int {
	log.Println("[INTEGRITY-SCHEDULER] Running course integrity audit...")

	findings, err := auditor.AuditBuildingCourses(ctx)
	if err != nil {
		log.Printf("[INTEGRITY-SCHEDULER] Audit aborted: %v", err)
	}
	for _, finding := range findings {
		log.Printf("[INTEGRITY-SCHEDULER] Course %d (%s) is not publishable: %v", finding.CourseID, finding.Title, finding.Err)
	}

	log.Printf("[INTEGRITY-SCHEDULER] Audit finished, %d course(s) need attention", len(findings))
	return len(findings)
}
