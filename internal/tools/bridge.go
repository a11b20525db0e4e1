package tools

import (
	"log"

	"github.com/HendryAvila/compass/internal/assessment"
	"github.com/HendryAvila/compass/internal/journal"
)

// ReportObserver is notified each time a report is generated.
// It's an optional dependency: tools work fine with a nil observer.
type ReportObserver interface {
	OnReport(r assessment.Report, markdown string)
}

// JournalBridge writes generated reports to the journal.
type JournalBridge struct {
	store *journal.Store
}

// NewJournalBridge creates a bridge over store. Returns nil if store is
// nil; callers should check before assigning it to a ReportObserver.
func NewJournalBridge(store *journal.Store) *JournalBridge {
	if store == nil {
		return nil
	}
	return &JournalBridge{store: store}
}

// OnReport saves the report. Failures are logged and never reach the
// caller, since the report itself has already been produced.
func (b *JournalBridge) OnReport(r assessment.Report, markdown string) {
	_, err := b.store.Save(journal.Entry{
		SessionID:      r.SessionID,
		TotalA:         r.TotalA,
		TotalB:         r.TotalB,
		Classification: string(r.Consistency.Classification),
		Quadrant:       string(r.Quadrant.Label),
		Events:         len(r.History),
		Markdown:       markdown,
		CreatedAt:      r.GeneratedAt,
	})
	if err != nil {
		log.Printf("WARNING: journal bridge: save report for session %s: %v", r.SessionID, err)
	}
}

// notifyObserver is a nil-safe helper called from ReportTool.Handle.
func notifyObserver(obs ReportObserver, r assessment.Report, markdown string) {
	if obs == nil {
		return
	}
	obs.OnReport(r, markdown)
}
