package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/anviet/tuition-api/internal/domain/billing"
	"github.com/anviet/tuition-api/internal/domain/entity"
	"github.com/anviet/tuition-api/internal/domain/repository"
	infraRepo "github.com/anviet/tuition-api/internal/infrastructure/repository"
	"github.com/anviet/tuition-api/internal/infrastructure/storage"
	"github.com/anviet/tuition-api/pkg/printer"
	"github.com/anviet/tuition-api/pkg/utils"
)

var testNow = time.Date(2026, time.March, 2, 8, 30, 0, 0, time.UTC)

type recordingPrinter struct {
	jobs [][]byte
	err  error
}

func (p *recordingPrinter) Print(_ context.Context, data []byte) error {
	if p.err != nil {
		return p.err
	}
	p.jobs = append(p.jobs, data)
	return nil
}

func (p *recordingPrinter) IsConnected(context.Context) bool { return p.err == nil }

var _ printer.Printer = (*recordingPrinter)(nil)

type failingDeleteStore struct {
	*storage.MemoryStore
}

func (failingDeleteStore) Delete(context.Context, string) error {
	return errors.New("delete failed")
}

type fixture struct {
	store    repository.KeyValueStore
	history  repository.HistoryRepository
	drafts   repository.DraftRepository
	printer  *recordingPrinter
	receipts *ReceiptService
	tuition  *TuitionService
	export   *ExportService
}

func newFixtureWithStore(t *testing.T, store repository.KeyValueStore) *fixture {
	t.Helper()
	log := zap.NewNop()
	clock := func() time.Time { return testNow }

	history := infraRepo.NewHistoryRepository(store, utils.NewTimestampIDGenerator(clock), log)
	drafts := infraRepo.NewDraftRepository(store, log)
	p := &recordingPrinter{}
	layout := billing.ReceiptLayout{
		Header:           entity.ReceiptHeader{CenterName: "TRUNG TÂM CAN THIỆP SỚM AN VIỆT", Phone: "0984.538.228"},
		Payment:          entity.PaymentInfo{BankName: "TPBank (Tiên Phong)", AccountNumber: "10000815935", AccountHolder: "Nguyễn Thị Bích"},
		IssuerDepartment: "Bộ phận quản lý - An Việt",
	}
	receipts := NewReceiptService(history, p, printer.TypeNetwork, 48, layout, log)

	return &fixture{
		store:    store,
		history:  history,
		drafts:   drafts,
		printer:  p,
		receipts: receipts,
		tuition:  NewTuitionService(history, drafts, receipts, clock, log),
		export:   NewExportService(history, store, t.TempDir(), clock, log),
	}
}

func newFixture(t *testing.T) *fixture {
	return newFixtureWithStore(t, storage.NewMemoryStore())
}
