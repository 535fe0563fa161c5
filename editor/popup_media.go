package editor

import (
	"encoding/base64"
	"fmt"
	"html"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"
	xhtml "golang.org/x/net/html"

	"github.com/iw2rmb/wysiwyg/dom"
)

// MediaKind is the embed type inferred for a media source.
type MediaKind int

const (
	MediaNone MediaKind = iota
	MediaImage
	MediaVideo
	MediaYouTube
	MediaVimeo
)

func (k MediaKind) String() string {
	switch k {
	case MediaImage:
		return "image"
	case MediaVideo:
		return "video"
	case MediaYouTube:
		return "youtube"
	case MediaVimeo:
		return "vimeo"
	}
	return "none"
}

var (
	imageExts = []string{"jpg", "jpeg", "png", "svg", "webp", "gif"}
	videoExts = []string{"mp4", "webm", "ogg", "avi", "mov"}

	youtubeID = regexp.MustCompile(`(?:youtube\.com/(?:[^/\n\s]+/\S+/|(?:v|e(?:mbed)?)/|\S*?[?&]v=)|youtu\.be/)([a-zA-Z0-9_-]{11})`)
	vimeoID   = regexp.MustCompile(`vimeo\.com/(?:video/)?(\d+)`)
)

type mediaInput struct {
	File string
	URL  string `validate:"required_without=File"`
	Alt  string
}

// mediaLoadedMsg delivers a local file read for a media insert.
type mediaLoadedMsg struct {
	id   string
	kind MediaKind
	src  string
	alt  string
	snap Snapshot
	size int
	err  error
}

func mediaForm() *xhtml.Node {
	file := inputField("File", "file", "file", "", "")
	dom.SetAttr(dom.FindOne(file, "input"), "accept", "image/*,video/*")
	return formNode(popupMedia, "Insert",
		file,
		inputField("URL", "text", "url", "", "https://"),
		inputField("Alt", "text", "alt", "", ""),
	)
}

// ClassifyMediaURL infers the media type of a URL: by extension first, then
// by YouTube and Vimeo URL shapes. It returns the source to embed.
func ClassifyMediaURL(raw string) (MediaKind, string) {
	p := raw
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(p), "."))
	switch {
	case slices.Contains(imageExts, ext):
		return MediaImage, raw
	case slices.Contains(videoExts, ext):
		return MediaVideo, raw
	}
	if m := youtubeID.FindStringSubmatch(raw); m != nil {
		return MediaYouTube, "https://www.youtube.com/embed/" + m[1]
	}
	if m := vimeoID.FindStringSubmatch(raw); m != nil {
		return MediaVimeo, "https://player.vimeo.com/video/" + m[1]
	}
	return MediaNone, ""
}

func mediaMarkup(kind MediaKind, src, alt string) string {
	src = html.EscapeString(src)
	switch kind {
	case MediaImage:
		return fmt.Sprintf(`<img src="%s" class="align-center" alt="%s">`, src, html.EscapeString(alt))
	case MediaVideo:
		return fmt.Sprintf(`<div class="media-wrapper"><video src="%s" controls></video></div>`, src)
	case MediaYouTube, MediaVimeo:
		return fmt.Sprintf(`<div class="media-wrapper"><span class="height-holder"></span><iframe src="%s" frameborder="0" allowfullscreen></iframe></div>`, src)
	}
	return ""
}

func (e *Editor) submitMedia(p *popup) (tea.Cmd, error) {
	in := mediaInput{
		File: p.file,
		URL:  strings.TrimSpace(p.value("url")),
		Alt:  strings.TrimSpace(p.value("alt")),
	}
	if err := validate.Struct(in); err != nil {
		return nil, fmt.Errorf("media: %w: %s", ErrMissingField, err)
	}
	if in.File != "" {
		return readMediaFile(e.id, in.File, in.Alt, e.cfg.MaxMediaSize, p.snap), nil
	}

	kind, src := ClassifyMediaURL(in.URL)
	if kind == MediaNone {
		return nil, fmt.Errorf("media: %w: %s", ErrUnsupportedMedia, in.URL)
	}
	alt := in.Alt
	if alt == "" {
		alt = path.Base(strings.SplitN(in.URL, "?", 2)[0])
	}
	snap := p.snap
	e.closePopup(p)
	return nil, e.insertMedia(snap, kind, src, alt)
}

// readMediaFile reads a local image or video off the UI goroutine and embeds
// it as a data URI.
func readMediaFile(id, name, alt string, limit int64, snap Snapshot) tea.Cmd {
	return func() tea.Msg {
		msg := mediaLoadedMsg{id: id, alt: alt, snap: snap}
		if limit > 0 {
			fi, err := os.Stat(name)
			if err != nil {
				msg.err = fmt.Errorf("media: %w", err)
				return msg
			}
			if fi.Size() > limit {
				msg.err = fmt.Errorf("media: %w: %s is %s, limit %s", ErrMediaTooLarge,
					filepath.Base(name), humanize.Bytes(uint64(fi.Size())), humanize.Bytes(uint64(limit)))
				return msg
			}
		}
		data, err := os.ReadFile(name)
		if err != nil {
			msg.err = fmt.Errorf("media: %w", err)
			return msg
		}
		mt := mimetype.Detect(data)
		switch {
		case strings.HasPrefix(mt.String(), "image/"):
			msg.kind = MediaImage
		case strings.HasPrefix(mt.String(), "video/"):
			msg.kind = MediaVideo
		default:
			msg.err = fmt.Errorf("media: %w: %s is %s", ErrUnsupportedMedia, filepath.Base(name), mt.String())
			return msg
		}
		if msg.alt == "" {
			msg.alt = filepath.Base(name)
		}
		msg.size = len(data)
		msg.src = "data:" + mt.String() + ";base64," + base64.StdEncoding.EncodeToString(data)
		return msg
	}
}

func (e *Editor) mediaLoaded(msg mediaLoadedMsg) tea.Cmd {
	if p := e.popups[popupMedia]; p != nil {
		e.closePopup(p)
	}
	if msg.err != nil {
		e.log.Debug("media load", zap.Error(msg.err))
		return nil
	}
	e.log.Debug("media embedded", zap.String("kind", msg.kind.String()), zap.String("size", humanize.Bytes(uint64(msg.size))))
	if err := e.insertMedia(msg.snap, msg.kind, msg.src, msg.alt); err != nil {
		e.log.Debug("media insert", zap.Error(err))
		return nil
	}
	return e.recheck.Trigger(e.id)
}

func (e *Editor) insertMedia(snap Snapshot, kind MediaKind, src, alt string) error {
	if e.codeView {
		return fmt.Errorf("media: %w", ErrCodeView)
	}
	snap.Restore(e.surface)
	if err := e.surface.InsertHTML("<br>" + mediaMarkup(kind, src, alt) + "<br>"); err != nil {
		return fmt.Errorf("media: %w", err)
	}
	e.contentChanged()
	return nil
}
