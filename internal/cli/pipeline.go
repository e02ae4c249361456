package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/liftblock/fwrelease/internal/catalog"
	"github.com/liftblock/fwrelease/internal/changelog"
	"github.com/liftblock/fwrelease/internal/config"
	clierrors "github.com/liftblock/fwrelease/internal/errors"
	"github.com/liftblock/fwrelease/internal/release"
	"github.com/liftblock/fwrelease/internal/tables"
	"github.com/liftblock/fwrelease/internal/textio"
)

// pipeline holds everything one run works on. It is rebuilt from scratch for every run.
type pipeline struct {
	cfg     *config.Configuration
	tables  *tables.Tables
	matcher *catalog.Matcher
	engine  *release.Engine
	csvOpts catalog.CSVOptions

	doc     *changelog.Document
	catalog *catalog.Table
}

// newPipeline resolves tables and matching rules from the configuration.
func newPipeline(c *config.Configuration) (*pipeline, error) {
	t, err := c.Tables()
	if err != nil {
		return nil, clierrors.ConfigParseError(c.TablesFile, err)
	}
	csvOpts, err := c.CSVOptions()
	if err != nil {
		return nil, clierrors.WrapWithMessage(err, clierrors.Configuration, "delimiter")
	}

	m := c.Matcher(t)
	e := release.NewEngine(m)
	e.SortStep = c.SortStep
	e.DeviceSortStep = c.DeviceSortStep
	e.DeviceType = c.DeviceType

	return &pipeline{cfg: c, tables: t, matcher: m, engine: e, csvOpts: csvOpts}, nil
}

// loadChangelog reads and parses the changelog file.
func (p *pipeline) loadChangelog() error {
	rc, err := textio.Open(p.cfg.ChangelogFile, p.cfg.Encoding)
	if err != nil {
		if errors.Is(err, textio.ErrMissingInput) {
			return clierrors.MissingChangelogFile(p.cfg.ChangelogFile, err)
		}
		return err
	}
	defer rc.Close()

	doc, err := changelog.ParseReader(rc, p.tables)
	if err != nil {
		return err
	}
	p.doc = doc
	logger.Debug("changelog parsed",
		zap.String("file", p.cfg.ChangelogFile),
		zap.Strings("types", doc.Common.Keys()),
		zap.Int("models", doc.Special.Len()),
		zap.Int("devices", doc.Devices.Len()),
		zap.Int("entries", doc.EntryCount()))
	return nil
}

// loadCatalog reads the catalog export and checks its header.
func (p *pipeline) loadCatalog() error {
	rc, err := textio.Open(p.cfg.CatalogFile, p.cfg.Encoding)
	if err != nil {
		if errors.Is(err, textio.ErrMissingInput) {
			return clierrors.MissingCatalogFile(p.cfg.CatalogFile, err)
		}
		return err
	}
	defer rc.Close()

	t, err := catalog.Read(rc, p.csvOpts)
	if err != nil {
		return fmt.Errorf("reading %s: %w", p.cfg.CatalogFile, err)
	}
	if err := p.cfg.Columns.CheckHeader(t.Header); err != nil {
		return err
	}
	p.catalog = t
	logger.Debug("catalog loaded", zap.String("file", p.cfg.CatalogFile), zap.Int("rows", len(t.Rows)))
	return nil
}

// load reads both inputs concurrently. When both fail, the changelog error
// is reported so the message does not depend on goroutine scheduling.
func (p *pipeline) load(ctx context.Context) error {
	var changelogErr, catalogErr error
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		changelogErr = p.loadChangelog()
		return changelogErr
	})
	g.Go(func() error {
		catalogErr = p.loadCatalog()
		return catalogErr
	})
	if err := g.Wait(); err == nil {
		return nil
	}
	if changelogErr != nil {
		return changelogErr
	}
	return catalogErr
}

// outcome is the result of a full generate pass.
type outcome struct {
	report release.Report
	result *release.Result
}

// run performs the consistency check and both merge paths.
func (p *pipeline) run() (*outcome, error) {
	rep := release.Check(p.doc, p.catalog.Rows, p.matcher, p.cfg.ReferenceType)
	res, err := p.engine.MergeAll(p.doc, p.catalog.Rows)
	if err != nil {
		return nil, err
	}
	return &outcome{report: rep, result: res}, nil
}

// write stores rows in the output file. Nothing is written for an empty result.
func (p *pipeline) write(rows []catalog.Row) error {
	if len(rows) == 0 {
		return clierrors.NothingToWrite(p.cfg.ChangelogFile)
	}

	w, err := textio.Create(p.cfg.OutputFile, p.cfg.OutputEncoding)
	if err != nil {
		return clierrors.FileNotWritable(p.cfg.OutputFile, err)
	}
	if err := catalog.Write(w, p.engine.Header(), rows, p.csvOpts); err != nil {
		w.Close()
		os.Remove(p.cfg.OutputFile)
		return clierrors.FileNotWritable(p.cfg.OutputFile, err)
	}
	if err := w.Close(); err != nil {
		return clierrors.FileNotWritable(p.cfg.OutputFile, err)
	}
	return nil
}
