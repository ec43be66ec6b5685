package commands

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/apilinks/internal/config"
	"git.home.luguber.info/inful/apilinks/internal/foundation/errors"
)

const marker = `window.docInfo.version="develop"`

type env struct {
	dir     string
	docs    string
	cfgPath string
	logPath string
	srv     *httptest.Server
}

func newEnv(t *testing.T) *env {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/develop/api/paddle/abs_cn.html", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "<script>"+marker+"</script>")
	})
	for _, p := range []string{"/docs/1.12/generated/torch.abs.html", "/docs/stable/generated/torch.abs.html"} {
		mux.HandleFunc(p, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = io.WriteString(w, "<html></html>")
		})
	}
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	e := &env{
		dir:     dir,
		docs:    filepath.Join(dir, "cuda"),
		cfgPath: filepath.Join(dir, "apilinks.yaml"),
		logPath: filepath.Join(dir, "apilinks.log"),
		srv:     srv,
	}
	require.NoError(t, os.MkdirAll(e.docs, 0o755))

	cfg := fmt.Sprintf(`input:
  dir: %s
logging:
  file: %s
http:
  timeout: 2s
policies:
  - name: paddle
    kind: prefix
    section: {keyword: "paddle."}
    target_url: "%s/develop/"
    marker: '%s'
  - name: torch
    kind: version
    section: {keyword: "torch."}
    target_version: stable
`, e.docs, e.logPath, srv.URL, marker)
	require.NoError(t, os.WriteFile(e.cfgPath, []byte(cfg), 0o600))

	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })
	return e
}

func (e *env) writeDoc(t *testing.T, name, torchPath, paddlePath string) string {
	t.Helper()
	doc := fmt.Sprintf("## [ 参数完全一致 ]torch.abs\n\n### [torch.abs](%s%s)\n\n### [paddle.abs](%s%s)\n",
		e.srv.URL, torchPath, e.srv.URL, paddlePath)
	path := filepath.Join(e.docs, name)
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	return path
}

// execute parses args like main does and runs the selected command.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var cli CLI
	var stdout, stderr bytes.Buffer
	g := &Global{Stdout: &stdout, Stderr: &stderr}
	t.Cleanup(func() { _ = g.Close() })

	parser, err := kong.New(&cli,
		kong.Name("apilinks"),
		kong.Vars{"version": "test"},
		kong.Bind(g),
		kong.Exit(func(code int) { t.Fatalf("unexpected exit %d", code) }),
	)
	require.NoError(t, err)

	kctx, err := parser.Parse(args)
	if err != nil {
		return stdout.String(), err
	}
	err = kctx.Run(&cli)
	return stdout.String(), err
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestCheckCorrectsLinks(t *testing.T) {
	e := newEnv(t)
	path := e.writeDoc(t, "abs.md", "/docs/1.12/generated/torch.abs.html", "/develop/api/paddle/abs_cn.html")

	out, err := execute(t, "-c", e.cfgPath, "check")
	require.NoError(t, err)

	require.Contains(t, out, "paddle: 0 failing files")
	require.Contains(t, out, "torch: 0 failing files")
	require.Contains(t, out, "corrected")
	require.Contains(t, out, "all links valid")
	require.Contains(t, readFile(t, path), "[torch.abs]("+e.srv.URL+"/docs/stable/generated/torch.abs.html)")

	log := readFile(t, e.logPath)
	require.Contains(t, log, "run_id=")
	require.Contains(t, log, "Link check finished")
}

func TestCheckReportsFailures(t *testing.T) {
	e := newEnv(t)
	bad := e.writeDoc(t, "bad.md", "/docs/stable/generated/torch.abs.html", "/develop/api/paddle/missing.html")
	e.writeDoc(t, "good.md", "/docs/stable/generated/torch.abs.html", "/develop/api/paddle/abs_cn.html")

	out, err := execute(t, "-c", e.cfgPath, "check", e.docs)
	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryValidation))
	require.Equal(t, 2, errors.NewCLIErrorAdapter(false, nil).ExitCodeFor(err))

	require.Contains(t, out, "paddle: 1 failing file\n")
	require.Contains(t, out, bad+" (unreachable)")
	require.Contains(t, out, "torch: 0 failing files")
}

func TestCheckDefaultConfigSkipsHeadingWithoutLink(t *testing.T) {
	e := newEnv(t)
	cfg := fmt.Sprintf("input:\n  dir: %s\nlogging:\n  file: %s\n", e.docs, e.logPath)
	require.NoError(t, os.WriteFile(e.cfgPath, []byte(cfg), 0o600))

	path := filepath.Join(e.docs, "abs.md")
	doc := "## [ 组合替代实现 ]torch.abs\n\n### [torch.abs](" + e.srv.URL + "/docs/stable/generated/torch.abs.html)\n\nPaddle 无此 API\n\n### 转写示例\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	out, err := execute(t, "-c", e.cfgPath, "check")
	require.NoError(t, err)
	require.Contains(t, out, "paddle: 0 failing files\n")
	require.NotContains(t, out, path)
	require.Equal(t, doc, readFile(t, path))
}

func TestCheckDryRunWritesMetrics(t *testing.T) {
	e := newEnv(t)
	path := e.writeDoc(t, "abs.md", "/docs/1.12/generated/torch.abs.html", "/develop/api/paddle/abs_cn.html")
	before := readFile(t, path)
	metricsPath := filepath.Join(e.dir, "apilinks.prom")

	out, err := execute(t, "-c", e.cfgPath, "check", "--dry-run", "--metrics-file", metricsPath)
	require.NoError(t, err)
	require.Contains(t, out, "would correct")
	require.Equal(t, before, readFile(t, path))

	prom := readFile(t, metricsPath)
	require.Contains(t, prom, `apilinks_link_rewrites_total{dry_run="true",policy="torch"} 1`)
	require.Contains(t, prom, `apilinks_link_checks_total{policy="paddle",status="ok"} 1`)
}

func TestCheckSingleFileAsDefaultCommand(t *testing.T) {
	e := newEnv(t)
	path := e.writeDoc(t, "abs.md", "/docs/stable/generated/torch.abs.html", "/develop/api/paddle/abs_cn.html")
	e.writeDoc(t, "other.md", "/docs/stable/generated/torch.abs.html", "/develop/api/paddle/missing.html")

	out, err := execute(t, "-c", e.cfgPath, path)
	require.NoError(t, err)
	require.Contains(t, out, "1 file checked against 2 policies")
}

func TestCheckMissingPath(t *testing.T) {
	e := newEnv(t)
	_, err := execute(t, "-c", e.cfgPath, "check", filepath.Join(e.dir, "nope"))
	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryFileSystem))
}

func TestInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "apilinks.yaml")
	require.NoError(t, os.WriteFile(path, []byte("policies:\n  - {name: a, kind: semver}\n"), 0o600))

	_, err := execute(t, "-c", path, "check", dir)
	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryConfig))
	require.Equal(t, 7, errors.NewCLIErrorAdapter(false, nil).ExitCodeFor(err))
}

func TestInit(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "custom.yaml")

	out, err := execute(t, "-c", path, "init")
	require.NoError(t, err)
	require.Contains(t, out, "Wrote default configuration to "+path)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, config.Default(), cfg)

	_, err = execute(t, "-c", path, "init")
	require.ErrorContains(t, err, "already exists")

	_, err = execute(t, "-c", path, "init", "--force")
	require.NoError(t, err)

	_, statErr := os.Stat(filepath.Join(dir, config.DefaultLogFile))
	require.True(t, os.IsNotExist(statErr), "init must not create a log file")
}

func TestNewLogger(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "run.log")
	var stderr bytes.Buffer

	logger, closer, err := newLogger(config.LoggingConfig{
		Level:  config.LogLevelWarn,
		Format: config.LogFormatJSON,
		File:   logPath,
	}, false, &stderr)
	require.NoError(t, err)
	require.NotNil(t, closer)

	logger.Info("dropped")
	logger.Warn("kept", "policy", "paddle")
	require.NoError(t, closer.Close())

	data := readFile(t, logPath)
	require.NotContains(t, data, "dropped")
	require.Contains(t, data, `"msg":"kept"`)
	require.Contains(t, data, `"policy":"paddle"`)
	require.Empty(t, stderr.String())
}

func TestNewLoggerVerboseWithoutFile(t *testing.T) {
	var stderr bytes.Buffer
	logger, closer, err := newLogger(config.LoggingConfig{
		Level:  config.LogLevelError,
		Format: config.LogFormatText,
		File:   config.LogFileDisabled,
	}, true, &stderr)
	require.NoError(t, err)
	require.Nil(t, closer)

	logger.Debug("visible")
	require.Contains(t, stderr.String(), "msg=visible")
}

func TestNewLoggerBadFile(t *testing.T) {
	_, _, err := newLogger(config.LoggingConfig{File: filepath.Join(t.TempDir(), "missing", "x.log")}, false, io.Discard)
	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryFileSystem))
}
