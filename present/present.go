// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package present

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/ggsheet/canvas"
)

// Common errors returned by Presenter operations.
var (
	// ErrClosed is returned when operations are attempted on a closed presenter.
	ErrClosed = errors.New("present: presenter is closed")

	// ErrNilProvider is returned when a nil DeviceProvider is passed.
	ErrNilProvider = errors.New("present: nil DeviceProvider")

	// ErrNilCanvas is returned when Upload receives no surface.
	ErrNilCanvas = errors.New("present: nil canvas")

	// ErrNothingUploaded is returned by PresentTo before the first Upload.
	ErrNothingUploaded = errors.New("present: nothing uploaded")

	// ErrInvalidDrawContext is returned when the draw context is nil or the
	// texture it created cannot be drawn.
	ErrInvalidDrawContext = errors.New("present: dc must implement gpucontext.TextureDrawer")

	// ErrInvalidRenderer is returned when the draw context has no
	// gpucontext.TextureCreator.
	ErrInvalidRenderer = errors.New("present: renderer must implement gpucontext.TextureCreator")
)

// textureDestroyer matches the gogpu.Texture.Destroy signature.
type textureDestroyer interface {
	Destroy()
}

func destroy(tex any) {
	if d, ok := tex.(textureDestroyer); ok {
		d.Destroy()
	}
}

// Presenter owns the GPU texture a sheet surface is shown through.
type Presenter struct {
	provider gpucontext.DeviceProvider

	pixels        []byte
	width, height int

	texture    any // created lazily on the first PresentTo
	oldTexture any // replaced texture awaiting destruction
	dirty      bool
	recreate   bool
	uploads    int
	closed     bool
}

// New creates a presenter for the device of provider, which usually comes
// from gogpu.App.GPUContextProvider().
func New(provider gpucontext.DeviceProvider) (*Presenter, error) {
	if provider == nil {
		return nil, ErrNilProvider
	}
	return &Presenter{provider: provider}, nil
}

// Upload stages the pixels of c for the next PresentTo. Pixels equal to
// the previous upload are skipped.
func (p *Presenter) Upload(c *canvas.Canvas) error {
	if p.closed {
		return ErrClosed
	}
	if c == nil {
		return ErrNilCanvas
	}
	img := c.Image()
	w, h := img.Rect.Dx(), img.Rect.Dy()
	if w != p.width || h != p.height {
		p.width, p.height = w, h
		p.pixels = make([]byte, len(img.Pix))
		p.recreate = true
	} else if bytes.Equal(p.pixels, img.Pix) && p.texture != nil {
		return nil
	}
	copy(p.pixels, img.Pix)
	p.dirty = true
	return nil
}

// IsDirty reports whether staged pixels wait for PresentTo.
func (p *Presenter) IsDirty() bool { return p.dirty }

// Size returns the device size of the staged surface.
func (p *Presenter) Size() (width, height int) { return p.width, p.height }

// Uploads returns the number of texture writes so far.
func (p *Presenter) Uploads() int { return p.uploads }

// SurfaceFormat returns the window surface format of the provider.
func (p *Presenter) SurfaceFormat() gputypes.TextureFormat {
	if p.closed {
		return gputypes.TextureFormatUndefined
	}
	return p.provider.SurfaceFormat()
}

// PresentTo writes staged pixels to the texture and draws it at (x, y).
func (p *Presenter) PresentTo(dc gpucontext.TextureDrawer, x, y float32) error {
	if p.closed {
		return ErrClosed
	}
	if dc == nil {
		return ErrInvalidDrawContext
	}
	if p.pixels == nil {
		return ErrNothingUploaded
	}

	if p.recreate && p.texture != nil {
		// The old texture may still be used by in-flight command buffers.
		destroy(p.oldTexture)
		p.oldTexture = p.texture
		p.texture = nil
	}
	p.recreate = false

	if p.texture == nil {
		creator := dc.TextureCreator()
		if creator == nil {
			return ErrInvalidRenderer
		}
		tex, err := creator.NewTextureFromRGBA(p.width, p.height, p.pixels)
		if err != nil {
			return fmt.Errorf("present: NewTextureFromRGBA failed: %w", err)
		}
		// canvas pixels are premultiplied.
		if pt, ok := tex.(interface{ SetPremultiplied(bool) }); ok {
			pt.SetPremultiplied(true)
		}
		p.texture = tex
		p.uploads++
		p.dirty = false

		// The creation above waited for the GPU.
		destroy(p.oldTexture)
		p.oldTexture = nil
	} else if p.dirty {
		if updater, ok := p.texture.(gpucontext.TextureUpdater); ok {
			if err := updater.UpdateData(p.pixels); err != nil {
				return fmt.Errorf("present: texture update failed: %w", err)
			}
			p.uploads++
		}
		p.dirty = false
	}

	gpuTex, ok := p.texture.(gpucontext.Texture)
	if !ok {
		return ErrInvalidDrawContext
	}
	return dc.DrawTexture(gpuTex, x, y)
}

// Close releases the textures. Close is idempotent.
func (p *Presenter) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true
	destroy(p.oldTexture)
	destroy(p.texture)
	p.oldTexture, p.texture = nil, nil
	p.pixels = nil
	p.provider = nil
	return nil
}

// NullProvider is a DeviceProvider without a device, for headless hosts.
type NullProvider struct{}

// Device returns nil.
func (NullProvider) Device() gpucontext.Device { return nil }

// Queue returns nil.
func (NullProvider) Queue() gpucontext.Queue { return nil }

// Adapter returns nil.
func (NullProvider) Adapter() gpucontext.Adapter { return nil }

// AdapterInfo reports an unknown adapter.
func (NullProvider) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Type: gpucontext.AdapterTypeUnknown}
}

// SurfaceFormat returns the undefined format.
func (NullProvider) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatUndefined
}

var _ gpucontext.DeviceProvider = NullProvider{}
