package repo

import "context"

// ImageStore is a flat directory of rendered images keyed by file name.
type ImageStore interface {
	Exists(ctx context.Context, name string) (bool, error)
	Save(ctx context.Context, name string, data []byte) error
	List(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, name string) error
}

type Renderer interface {
	Render(content, fillColor, backColor string, size int) ([]byte, error)
}
