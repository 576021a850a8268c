package service

import (
	"context"
	"strings"

	"github.com/Miraines/MoonyAndStarry/qr-service/internal/adapters/transport/http/dto"
	"github.com/Miraines/MoonyAndStarry/qr-service/internal/app/qrcode/filename"
	customErrors "github.com/Miraines/MoonyAndStarry/qr-service/internal/domain/errors"
	"github.com/Miraines/MoonyAndStarry/qr-service/internal/domain/qrcode/model"
	"github.com/Miraines/MoonyAndStarry/qr-service/internal/domain/qrcode/repo"
	"github.com/Miraines/MoonyAndStarry/qr-service/internal/infra/config"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type Service interface {
	Create(context.Context, dto.CreateQRCodeDTO) (model.Descriptor, error)
	List(context.Context) ([]model.Descriptor, error)
	Delete(ctx context.Context, name string) error
}

type qrService struct {
	store    repo.ImageStore
	renderer repo.Renderer
	cfg      *config.Config
	v        *validator.Validate
	log      *zap.Logger
}

func New(
	store repo.ImageStore,
	renderer repo.Renderer,
	cfg *config.Config,
	v *validator.Validate,
	log *zap.Logger,
) Service {
	return &qrService{store: store, renderer: renderer, cfg: cfg, v: v, log: log}
}

// Create renders a QR code for the request URL unless a file for that URL
// already exists. An existing file is returned untouched even when colors or
// size differ; Descriptor.Created tells the two cases apart.
func (s *qrService) Create(ctx context.Context, dto dto.CreateQRCodeDTO) (model.Descriptor, error) {
	if err := s.v.Struct(dto); err != nil {
		return model.Descriptor{}, customErrors.NewInvalidArgument(err.Error())
	}
	req := s.withDefaults(dto)

	name, err := filename.FromURL(req.URL)
	if err != nil {
		return model.Descriptor{}, err
	}
	s.log.Info("creating qr code", zap.String("url", req.URL), zap.String("filename", name))

	exists, err := s.store.Exists(ctx, name)
	if err != nil {
		return model.Descriptor{}, customErrors.WrapGeneration(err, "Create")
	}
	if exists {
		s.log.Info("qr code already exists", zap.String("filename", name))
		return s.describe(name, model.MessageExists, false), nil
	}

	png, err := s.renderer.Render(req.URL, req.FillColor, req.BackColor, req.Size)
	if err != nil {
		s.log.Error("render qr code", zap.String("filename", name), zap.Error(err))
		if !customErrors.IsGeneration(err) {
			err = customErrors.WrapGeneration(err, "render")
		}
		return model.Descriptor{}, err
	}
	if err := s.store.Save(ctx, name, png); err != nil {
		s.log.Error("store qr code", zap.String("filename", name), zap.Error(err))
		if !customErrors.IsGeneration(err) {
			err = customErrors.WrapGeneration(err, "store")
		}
		return model.Descriptor{}, err
	}

	return s.describe(name, model.MessageCreated, true), nil
}

func (s *qrService) List(ctx context.Context) ([]model.Descriptor, error) {
	names, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.Descriptor, 0, len(names))
	for _, name := range names {
		out = append(out, s.describe(name, model.MessageAvailable, false))
	}
	return out, nil
}

func (s *qrService) Delete(ctx context.Context, name string) error {
	if !filename.Valid(name) {
		s.log.Warn("qr code not found", zap.String("filename", name), zap.String("reason", "invalid name"))
		return customErrors.ErrNotFound
	}
	if err := s.store.Delete(ctx, name); err != nil {
		if customErrors.IsNotFound(err) {
			s.log.Warn("qr code not found", zap.String("filename", name))
		}
		return err
	}
	s.log.Info("qr code deleted", zap.String("filename", name))
	return nil
}

func (s *qrService) withDefaults(d dto.CreateQRCodeDTO) model.Request {
	req := model.Request{
		URL:       d.URL,
		FillColor: strings.TrimSpace(d.FillColor),
		BackColor: strings.TrimSpace(d.BackColor),
		Size:      d.Size,
	}
	if req.FillColor == "" {
		req.FillColor = s.cfg.FillColor
	}
	if req.BackColor == "" {
		req.BackColor = s.cfg.BackColor
	}
	if req.Size == 0 {
		req.Size = config.DefaultQRSize
	}
	return req
}

func (s *qrService) downloadURL(name string) string {
	return s.cfg.ServerBaseURL + "/" + s.cfg.DownloadFolder + "/" + name
}

func (s *qrService) describe(name, message string, created bool) model.Descriptor {
	download := s.downloadURL(name)
	return model.Descriptor{
		Message:   message,
		Filename:  name,
		QRCodeURL: download,
		Links:     Links(name, s.cfg.ServerBaseURL+config.APIPrefix, download),
		Created:   created,
	}
}

// Links builds the view, delete and list links for the image name.
func Links(name, apiBaseURL, downloadURL string) []model.Link {
	return []model.Link{
		{Rel: "view", Href: downloadURL, Action: "GET", Type: "image/png"},
		{Rel: "delete", Href: apiBaseURL + "/qr-codes/" + name, Action: "DELETE", Type: "application/json"},
		{Rel: "list", Href: apiBaseURL + "/qr-codes/", Action: "GET", Type: "application/json"},
	}
}
