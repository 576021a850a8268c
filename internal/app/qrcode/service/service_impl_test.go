package service_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Miraines/MoonyAndStarry/qr-service/internal/adapters/render/qr"
	afsstore "github.com/Miraines/MoonyAndStarry/qr-service/internal/adapters/storage/afs"
	"github.com/Miraines/MoonyAndStarry/qr-service/internal/adapters/transport/http/dto"
	"github.com/Miraines/MoonyAndStarry/qr-service/internal/app/qrcode/filename"
	qrsvc "github.com/Miraines/MoonyAndStarry/qr-service/internal/app/qrcode/service"
	customErrors "github.com/Miraines/MoonyAndStarry/qr-service/internal/domain/errors"
	"github.com/Miraines/MoonyAndStarry/qr-service/internal/domain/qrcode/model"
	"github.com/Miraines/MoonyAndStarry/qr-service/internal/domain/qrcode/repo"
	"github.com/Miraines/MoonyAndStarry/qr-service/internal/infra/config"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

/* ──────────────────────────────── stubs ──────────────────────────────── */

type rendererStub struct {
	calls []model.Request
	err   error
}

func (r *rendererStub) Render(content, fill, back string, size int) ([]byte, error) {
	r.calls = append(r.calls, model.Request{URL: content, FillColor: fill, BackColor: back, Size: size})
	if r.err != nil {
		return nil, r.err
	}
	return []byte("png:" + content), nil
}

type failingStore struct{ repo.ImageStore }

func (failingStore) Exists(context.Context, string) (bool, error) { return false, nil }
func (failingStore) Save(context.Context, string, []byte) error {
	return customErrors.WrapGeneration(errors.New("disk full"), "write")
}

/* ───────────────────────────── helpers ───────────────────────────── */

func testConfig() *config.Config {
	return &config.Config{
		ServerBaseURL:  "http://localhost:8000",
		DownloadFolder: "downloads",
		FillColor:      "red",
		BackColor:      "white",
	}
}

func newSvc(t *testing.T, r *rendererStub) (qrsvc.Service, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "qr")
	store, err := afsstore.NewImageStore(context.Background(), dir, filename.Ext)
	require.NoError(t, err)
	return qrsvc.New(store, r, testConfig(), validator.New(), zap.NewNop()), dir
}

/* ───────────────────────────── tests ───────────────────────────── */

func TestCreate_NewThenExisting(t *testing.T) {
	r := &rendererStub{}
	svc, dir := newSvc(t, r)
	ctx := context.Background()
	req := dto.CreateQRCodeDTO{URL: "https://example.com", FillColor: "red", BackColor: "white", Size: 10}

	d, err := svc.Create(ctx, req)
	require.NoError(t, err)
	require.True(t, d.Created)
	require.Equal(t, model.MessageCreated, d.Message)
	require.Equal(t, "aHR0cHM6Ly9leGFtcGxlLmNvbQ.png", d.Filename)
	require.Equal(t, "http://localhost:8000/downloads/aHR0cHM6Ly9leGFtcGxlLmNvbQ.png", d.QRCodeURL)

	path := filepath.Join(dir, d.Filename)
	before, err := os.Stat(path)
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	again, err := svc.Create(ctx, dto.CreateQRCodeDTO{URL: "https://example.com", FillColor: "blue", Size: 3})
	require.NoError(t, err)
	require.False(t, again.Created)
	require.Equal(t, model.MessageExists, again.Message)
	require.Equal(t, d.QRCodeURL, again.QRCodeURL)
	require.Len(t, r.calls, 1, "existing file must not be re-rendered")

	after, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, before.ModTime(), after.ModTime())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "png:https://example.com", string(data))
}

func TestCreate_AppliesDefaults(t *testing.T) {
	r := &rendererStub{}
	svc, _ := newSvc(t, r)

	_, err := svc.Create(context.Background(), dto.CreateQRCodeDTO{URL: "https://example.org"})
	require.NoError(t, err)
	require.Equal(t, []model.Request{{URL: "https://example.org", FillColor: "red", BackColor: "white", Size: 10}}, r.calls)
}

func TestCreate_Validation(t *testing.T) {
	svc, _ := newSvc(t, &rendererStub{})
	ctx := context.Background()

	for _, req := range []dto.CreateQRCodeDTO{
		{},
		{URL: "not a url"},
		{URL: "https://example.com", Size: 41},
		{URL: "https://example.com", Size: -1},
	} {
		_, err := svc.Create(ctx, req)
		require.True(t, customErrors.IsInvalidArgument(err), "%+v", req)
	}
}

func TestCreate_RenderError(t *testing.T) {
	svc, dir := newSvc(t, &rendererStub{err: errors.New("bad color")})

	_, err := svc.Create(context.Background(), dto.CreateQRCodeDTO{URL: "https://example.com"})
	require.True(t, customErrors.IsGeneration(err))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestCreate_StoreError(t *testing.T) {
	svc := qrsvc.New(failingStore{}, &rendererStub{}, testConfig(), validator.New(), zap.NewNop())
	_, err := svc.Create(context.Background(), dto.CreateQRCodeDTO{URL: "https://example.com"})
	require.True(t, customErrors.IsGeneration(err))
}

func TestCreate_RealRenderer(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "qr")
	store, err := afsstore.NewImageStore(context.Background(), dir, filename.Ext)
	require.NoError(t, err)
	svc := qrsvc.New(store, qr.NewRenderer(), testConfig(), validator.New(), zap.NewNop())

	d, err := svc.Create(context.Background(), dto.CreateQRCodeDTO{URL: "https://example.com", FillColor: "red", BackColor: "white", Size: 10})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, d.Filename))
	require.NoError(t, err)
	require.Equal(t, []byte("\x89PNG"), data[:4])

	_, err = svc.Create(context.Background(), dto.CreateQRCodeDTO{URL: "https://example.net", FillColor: "nope"})
	require.True(t, customErrors.IsGeneration(err))
}

func TestDeleteThenList(t *testing.T) {
	svc, _ := newSvc(t, &rendererStub{})
	ctx := context.Background()

	a, err := svc.Create(ctx, dto.CreateQRCodeDTO{URL: "https://a.example.com"})
	require.NoError(t, err)
	b, err := svc.Create(ctx, dto.CreateQRCodeDTO{URL: "https://b.example.com"})
	require.NoError(t, err)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	for _, d := range list {
		require.Equal(t, model.MessageAvailable, d.Message)
	}

	require.NoError(t, svc.Delete(ctx, a.Filename))

	list, err = svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, b.Filename, list[0].Filename)

	err = svc.Delete(ctx, a.Filename)
	require.True(t, customErrors.IsNotFound(err))
}

func TestDelete_UnsafeName(t *testing.T) {
	svc, _ := newSvc(t, &rendererStub{})
	for _, name := range []string{"../etc/passwd", "..", "x.txt", ""} {
		require.True(t, customErrors.IsNotFound(svc.Delete(context.Background(), name)), name)
	}
}

func TestLinks(t *testing.T) {
	links := qrsvc.Links("f.png", "http://h/api/v1", "http://h/downloads/f.png")
	require.Equal(t, []model.Link{
		{Rel: "view", Href: "http://h/downloads/f.png", Action: "GET", Type: "image/png"},
		{Rel: "delete", Href: "http://h/api/v1/qr-codes/f.png", Action: "DELETE", Type: "application/json"},
		{Rel: "list", Href: "http://h/api/v1/qr-codes/", Action: "GET", Type: "application/json"},
	}, links)
}
