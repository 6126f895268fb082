package directory

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/jcpao/court-directory/internal/model"
	"github.com/jcpao/court-directory/internal/repository"
)

// EmployeeQuery loads the whole directory in one pass.
const EmployeeQuery = "SELECT * FROM employee_info_view"

// LoadTimeout bounds the shared directory query.  It does not depend on
// the request that happens to trigger the load.
const LoadTimeout = 30 * time.Second

// TableSource is the query layer as seen by the dataset.
type TableSource interface {
	QueryTable(ctx context.Context, query string) (repository.Table, error)
	ClearCache(ctx context.Context) error
}

// Dataset is the position-restricted directory, loaded on first use and
// kept until Refresh.  It is safe for concurrent use.
type Dataset struct {
	src     TableSource
	log     *zap.Logger
	timeout time.Duration

	mu      sync.Mutex
	loaded  bool
	rows    []model.Employee
	loadErr error
}

func NewDataset(src TableSource, log *zap.Logger) *Dataset {
	if log == nil {
		log = zap.NewNop()
	}
	return &Dataset{src: src, log: log, timeout: LoadTimeout}
}

// Load returns the restricted, sorted rows.  The query runs detached from
// ctx's cancellation under its own timeout, so a visitor leaving does not
// abort it.  A database failure is kept as an empty dataset and its error
// is returned on every call until Refresh; a timeout is returned once and
// the next call queries again.  Callers must not modify the returned slice.
func (d *Dataset) Load(ctx context.Context) ([]model.Employee, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.loaded {
		return d.rows, d.loadErr
	}

	qctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.timeout)
	defer cancel()
	tbl, err := d.src.QueryTable(qctx, EmployeeQuery)
	if isContextErr(err) {
		d.log.Warn("directory load interrupted", zap.Error(err))
		return []model.Employee{}, err
	}

	all := make([]model.Employee, 0, len(tbl.Rows))
	for _, row := range tbl.Rows {
		all = append(all, model.EmployeeFromRow(row))
	}
	d.rows = Restrict(all)
	d.loadErr = err
	d.loaded = true

	if err != nil {
		d.log.Error("directory load failed", zap.Error(err))
	} else {
		d.log.Info("directory loaded", zap.Int("employees", len(all)), zap.Int("listed", len(d.rows)))
	}
	return d.rows, d.loadErr
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// Refresh drops the loaded rows and the query cache; the next Load
// queries the database again.
func (d *Dataset) Refresh(ctx context.Context) error {
	d.mu.Lock()
	d.loaded = false
	d.rows = nil
	d.loadErr = nil
	d.mu.Unlock()
	return d.src.ClearCache(ctx)
}
