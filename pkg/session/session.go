package session

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/dougaird/angular-text-extractor/pkg/keygen"
	"github.com/dougaird/angular-text-extractor/pkg/logic"
	"github.com/dougaird/angular-text-extractor/pkg/markup"
	"github.com/dougaird/angular-text-extractor/pkg/parser"
	"github.com/dougaird/angular-text-extractor/pkg/util"
)

// Session is one extraction run over a directory. It owns the key counter
// and the aggregate mapping; create a fresh Session per run so counters
// never leak between runs.
type Session struct {
	cfg Config

	parserMgr *parser.Manager
	fileCache *util.FileCache
	markupExt *markup.Extractor
	logicExt  *logic.Extractor

	ownsParser bool
	ownsCache  bool

	gen     *keygen.Generator
	entries *Translations
	stats   Stats
	log     *slog.Logger
}

// New creates a session with all required dependencies. The parser manager
// and file cache may be shared across sessions (watch mode reuses them);
// pass nil to have the session own its own.
func New(cfg Config, pm *parser.Manager, fc *util.FileCache, logger *slog.Logger) (*Session, error) {
	if logger == nil {
		logger = slog.Default()
	}
	ownsParser := pm == nil
	if pm == nil {
		pm = parser.NewManager(logger)
	}
	ownsCache := fc == nil
	if fc == nil {
		var err error
		fc, err = util.NewFileCache(util.DefaultMaxCachedFiles, logger)
		if err != nil {
			return nil, err
		}
	}
	return &Session{
		cfg:        cfg,
		parserMgr:  pm,
		fileCache:  fc,
		ownsParser: ownsParser,
		ownsCache:  ownsCache,
		markupExt:  markup.NewExtractor(pm, logger),
		logicExt:   logic.NewExtractor(pm, logger),
		gen:        keygen.NewGenerator(cfg.KeyPrefix),
		entries:    NewTranslations(),
		log:        logger,
	}, nil
}

// Run discovers files under the configured source root and processes them
// strictly sequentially: markup files first, then logic files, each in
// sorted discovery order. Per-file failures are logged and skipped; only
// discovery itself can fail the run.
func (s *Session) Run() (*Artifact, error) {
	totalStart := time.Now()

	discoveryStart := time.Now()
	files, err := DiscoverFiles(s.cfg.SrcPath, s.cfg)
	if err != nil {
		return nil, fmt.Errorf("discovery failed: %w", err)
	}
	s.stats.FilesDiscovered = len(files)
	s.stats.DiscoveryTimeMs = time.Since(discoveryStart).Milliseconds()

	var markupFiles, logicFiles []string
	for _, f := range files {
		switch {
		case parser.IsMarkupFile(f):
			markupFiles = append(markupFiles, f)
		case parser.IsLogicFile(f):
			logicFiles = append(logicFiles, f)
		}
	}
	s.stats.MarkupFiles = len(markupFiles)
	s.stats.LogicFiles = len(logicFiles)

	s.log.Info("discovery complete",
		"markup", len(markupFiles), "logic", len(logicFiles), "ms", s.stats.DiscoveryTimeMs)

	markupStart := time.Now()
	for _, path := range markupFiles {
		s.processMarkupFile(path)
	}
	s.stats.MarkupTimeMs = time.Since(markupStart).Milliseconds()

	if !s.cfg.SkipLogic {
		logicStart := time.Now()
		for _, path := range logicFiles {
			s.processLogicFile(path)
		}
		s.stats.LogicTimeMs = time.Since(logicStart).Milliseconds()
	}

	s.stats.TextsExtracted = s.entries.Len()
	s.stats.TotalTimeMs = time.Since(totalStart).Milliseconds()

	s.log.Info("extraction complete",
		"texts", s.stats.TextsExtracted,
		"failed", s.stats.FilesFailed,
		"rewritten", s.stats.FilesRewritten,
		"ms", s.stats.TotalTimeMs)

	return &Artifact{
		Locale:       s.cfg.Locale,
		Translations: s.entries,
		Metadata: Metadata{
			ExtractedAt: time.Now().UTC().Format(time.RFC3339),
			TotalTexts:  s.entries.Len(),
			KeyPrefix:   s.cfg.KeyPrefix,
		},
	}, nil
}

// Stats returns the counters for the completed run.
func (s *Session) Stats() Stats {
	return s.stats
}

// WriteArtifact creates the output directory and writes the artifact as
// indented JSON. Unlike per-file errors this path is fatal: a failed write
// means the run produced no valid artifact.
func (s *Session) WriteArtifact(a *Artifact) error {
	dir := filepath.Dir(s.cfg.OutputPath)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal artifact: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(s.cfg.OutputPath, data, 0o644); err != nil {
		return fmt.Errorf("write artifact: %w", err)
	}

	s.log.Info("artifact written", "path", s.cfg.OutputPath, "texts", a.Metadata.TotalTexts)
	return nil
}

func (s *Session) processMarkupFile(path string) {
	source, err := s.fileCache.Read(path)
	if err != nil {
		s.log.Warn("skipping unreadable markup file", "file", path, "error", err)
		s.stats.FilesFailed++
		return
	}

	res, err := s.markupExt.ExtractSource(source, s.gen, markup.Options{
		Replace:          s.cfg.Replace,
		ComponentContext: s.componentContext(path),
	})
	if err != nil {
		s.log.Warn("skipping malformed markup file", "file", path, "error", err)
		s.stats.FilesFailed++
		return
	}

	for _, e := range res.Entries {
		s.entries.Add(e.Key, e.Text)
	}
	s.log.Debug("markup file processed", "file", path, "texts", len(res.Entries))

	if res.Rewritten != nil {
		s.writeBack(path, res.Rewritten)
	}
}

func (s *Session) processLogicFile(path string) {
	source, err := s.fileCache.Read(path)
	if err != nil {
		s.log.Warn("skipping unreadable logic file", "file", path, "error", err)
		s.stats.FilesFailed++
		return
	}

	res, err := s.logicExt.ExtractSource(path, source, s.gen, logic.Options{
		Replace:          s.cfg.Replace,
		ComponentContext: s.componentContext(path),
		ServicePath:      s.servicePath(),
	})
	if err != nil {
		s.log.Warn("skipping malformed logic file", "file", path, "error", err)
		s.stats.FilesFailed++
		return
	}

	for _, e := range res.Entries {
		s.entries.Add(e.Key, e.Text)
	}
	s.log.Debug("logic file processed", "file", path, "texts", len(res.Entries))

	if res.Rewritten != nil {
		s.writeBack(path, res.Rewritten)
	}
}

// writeBack persists rewritten content. A failed write is per-file:
// logged, counted, and the session continues.
func (s *Session) writeBack(path string, content []byte) {
	if err := os.WriteFile(path, content, 0o644); err != nil {
		s.log.Warn("failed to rewrite file", "file", path, "error", err)
		s.stats.FilesFailed++
		return
	}
	s.fileCache.Invalidate(path)
	s.stats.FilesRewritten++
}

func (s *Session) componentContext(path string) string {
	if !s.cfg.UseComponentContext {
		return ""
	}
	return keygen.DeriveComponentContext(path)
}

// servicePath resolves the lookup-service location against the source
// root so relative imports are computed from real file locations.
func (s *Session) servicePath() string {
	if s.cfg.ServicePath == "" {
		return ""
	}
	if filepath.IsAbs(s.cfg.ServicePath) {
		return s.cfg.ServicePath
	}
	abs, err := filepath.Abs(filepath.Join(s.cfg.SrcPath, s.cfg.ServicePath))
	if err != nil {
		return s.cfg.ServicePath
	}
	return abs
}

// Close releases the parser and cache resources the session created
// itself. Shared dependencies passed into New are left alone.
func (s *Session) Close() {
	if s.ownsParser {
		s.parserMgr.Close()
	}
	if s.ownsCache {
		s.fileCache.Close()
	}
}
