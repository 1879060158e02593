// Package upload sends JPEG images to the display device over its HTTP
// multipart endpoint.
package upload

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"

	"github.com/ByLCY/signboard/config"
	"github.com/ByLCY/signboard/render"
)

// Result reports the outcome of one upload.
type Result struct {
	Success    bool
	StatusCode int
	Message    string
	Slot       int
	Filename   string
}

// Source is an image to upload. The concrete types are Raster, File and
// Bytes.
type Source interface {
	jpegBytes(c *Client) ([]byte, error)
}

// Raster uploads an in-memory image, cropped and scaled to the device
// canvas.
type Raster struct {
	Image image.Image
}

// File uploads an image file from disk, cropped and scaled to the
// device canvas.
type File struct {
	Path string
}

// Bytes uploads already-encoded JPEG data as-is.
type Bytes struct {
	Data []byte
}

// Client talks to one display device.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	cfg config.Display
}

// NewClient builds a client for the configured device.
func NewClient(cfg config.Display) *Client {
	return &Client{
		BaseURL:    cfg.BaseURL,
		HTTPClient: &http.Client{Timeout: cfg.Timeout},
		cfg:        cfg,
	}
}

func (r Raster) jpegBytes(c *Client) ([]byte, error) {
	return c.processImage(r.Image)
}

func (f File) jpegBytes(c *Client) ([]byte, error) {
	fh, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer fh.Close()
	img, _, err := image.Decode(fh)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", f.Path, err)
	}
	return c.processImage(img)
}

func (b Bytes) jpegBytes(*Client) ([]byte, error) {
	if len(b.Data) == 0 {
		return nil, fmt.Errorf("empty image data")
	}
	return b.Data, nil
}

// processImage center-crops the image to a square and scales it to the
// device canvas before JPEG encoding.
func (c *Client) processImage(img image.Image) ([]byte, error) {
	b := img.Bounds()
	side := b.Dx()
	if b.Dy() < side {
		side = b.Dy()
	}
	x0 := b.Min.X + (b.Dx()-side)/2
	y0 := b.Min.Y + (b.Dy()-side)/2

	dst := image.NewRGBA(image.Rect(0, 0, c.cfg.Width, c.cfg.Height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, image.Rect(x0, y0, x0+side, y0+side), xdraw.Src, nil)

	return render.EncodeJPEG(dst, c.cfg.JPEGQuality)
}

// Upload sends src to the given slot. Invalid slots return an error;
// transport and server failures return a failed Result with a nil
// error so callers can report per-slot outcomes.
func (c *Client) Upload(ctx context.Context, slot int, src Source, filename string) (Result, error) {
	valid := false
	for _, s := range c.cfg.Slots {
		if s == slot {
			valid = true
			break
		}
	}
	if !valid {
		return Result{}, fmt.Errorf("invalid slot %d, valid slots: %v", slot, c.cfg.Slots)
	}

	if filename == "" {
		filename = fmt.Sprintf("file%d.jpg", slot)
	}
	// The device's flash filesystem only serves .jpg files.
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
	default:
		filename += ".jpg"
	}

	data, err := src.jpegBytes(c)
	if err != nil {
		return Result{}, err
	}

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="imageFile"; filename="%s"`, filename))
	h.Set("Content-Type", "image/jpeg")
	part, err := w.CreatePart(h)
	if err != nil {
		return Result{}, fmt.Errorf("build multipart: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return Result{}, fmt.Errorf("build multipart: %w", err)
	}
	if err := w.Close(); err != nil {
		return Result{}, fmt.Errorf("build multipart: %w", err)
	}

	url := fmt.Sprintf("%s/upload", c.BaseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return Result{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return Result{
			Success:  false,
			Message:  fmt.Sprintf("upload failed: %v", err),
			Slot:     slot,
			Filename: filename,
		}, nil
	}
	defer resp.Body.Close()
	msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	return Result{
		Success:    resp.StatusCode == http.StatusOK,
		StatusCode: resp.StatusCode,
		Message:    string(msg),
		Slot:       slot,
		Filename:   filename,
	}, nil
}

// TestConnection reports whether the device answers HTTP at all. Any
// response counts; only transport errors fail.
func (c *Client) TestConnection(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL, nil)
	if err != nil {
		return false
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return true
}

// BatchUpload sends one source per slot, in ascending slot order.
// Invalid slots are reported as failed results rather than aborting the
// batch.
func (c *Client) BatchUpload(ctx context.Context, sources map[int]Source) []Result {
	slots := make([]int, 0, len(sources))
	for slot := range sources {
		slots = append(slots, slot)
	}
	sort.Ints(slots)

	results := make([]Result, 0, len(slots))
	for _, slot := range slots {
		res, err := c.Upload(ctx, slot, sources[slot], "")
		if err != nil {
			res = Result{Success: false, Message: err.Error(), Slot: slot}
		}
		results = append(results, res)
	}
	return results
}
