package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"jiansou/backend/app/dto"
)

const (
	picsumBaseURL   = "https://picsum.photos"
	bingArchiveURL  = "https://www.bing.com/HPImageArchive.aspx?format=js&idx=0&n=1&mkt=zh-CN"
	bingBaseURL     = "https://www.bing.com"
	maxWallpaperDim = 10000
)

var ErrUpstream = errors.New("wallpaper upstream failed")

// WallpaperQuery selects a random background image.
type WallpaperQuery struct {
	Source string
	Width  int
	Height int
	Blur   int
}

// Wallpaper is an upstream image the caller must close.
type Wallpaper struct {
	Body        io.ReadCloser
	ContentType string
}

type WallpaperService struct {
	client     *http.Client
	timeout    time.Duration
	picsumURL  string
	bingAPIURL string
	bingURL    string
}

func NewWallpaperService(timeout time.Duration) *WallpaperService {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	// the timeout covers response headers only so image bodies can stream
	tr := http.DefaultTransport.(*http.Transport).Clone()
	tr.ResponseHeaderTimeout = timeout
	return &WallpaperService{
		client:     &http.Client{Transport: tr},
		timeout:    timeout,
		picsumURL:  picsumBaseURL,
		bingAPIURL: bingArchiveURL,
		bingURL:    bingBaseURL,
	}
}

func (s *WallpaperService) Sources() []dto.WallpaperSource {
	return []dto.WallpaperSource{
		{Name: "picsum", BaseURL: s.picsumURL, Categories: []string{"random"}, Blur: true},
		{Name: "bing", BaseURL: s.bingURL, Categories: []string{"daily"}, Blur: false},
	}
}

// Random opens an image stream from the selected source.
func (s *WallpaperService) Random(ctx context.Context, q WallpaperQuery) (*Wallpaper, error) {
	if q.Width == 0 {
		q.Width = 1920
	}
	if q.Height == 0 {
		q.Height = 1080
	}
	if q.Width < 1 || q.Width > maxWallpaperDim || q.Height < 1 || q.Height > maxWallpaperDim {
		return nil, fmt.Errorf("%w: width and height must be within 1..%d", ErrInvalidInput, maxWallpaperDim)
	}
	if q.Blur < 0 || q.Blur > 10 {
		return nil, fmt.Errorf("%w: blur must be within 0..10", ErrInvalidInput)
	}

	var imageURL string
	switch strings.ToLower(q.Source) {
	case "", "picsum":
		imageURL = fmt.Sprintf("%s/%d/%d", s.picsumURL, q.Width, q.Height)
		if q.Blur > 0 {
			imageURL += fmt.Sprintf("?blur=%d", q.Blur)
		}
	case "bing":
		u, err := s.bingImageURL(ctx)
		if err != nil {
			return nil, err
		}
		imageURL = u
	default:
		return nil, fmt.Errorf("%w: unknown source %q", ErrInvalidInput, q.Source)
	}
	return s.open(ctx, imageURL)
}

func (s *WallpaperService) bingImageURL(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.bingAPIURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: bing archive status %d", ErrUpstream, resp.StatusCode)
	}
	var archive struct {
		Images []struct {
			URL string `json:"url"`
		} `json:"images"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&archive); err != nil {
		return "", fmt.Errorf("%w: decode bing archive: %v", ErrUpstream, err)
	}
	if len(archive.Images) == 0 || archive.Images[0].URL == "" {
		return "", fmt.Errorf("%w: bing archive has no images", ErrUpstream)
	}
	u := archive.Images[0].URL
	if strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") {
		return u, nil
	}
	return s.bingURL + u, nil
}

func (s *WallpaperService) open(ctx context.Context, imageURL string) (*Wallpaper, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}
	ctype := resp.Header.Get("Content-Type")
	if ctype == "" {
		ctype = "image/jpeg"
	}
	return &Wallpaper{Body: resp.Body, ContentType: ctype}, nil
}
