package gallery

import (
	"context"
	"io"
	"sync"

	"cardgallery/cmd/cards/ui"
	"cardgallery/internal/cards"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
)

// =============================================================================
// CONFIGURATION
// =============================================================================

// Config holds settings for the gallery view.
type Config struct {
	PageSize       int
	MinColumnWidth int
	ShowImageURL   bool
	Theme          string   // auto, light, dark
	Extensions     []string // image extensions offered by the upload picker
	StartDir       string   // upload picker start directory
}

// CardService is the subset of the webhook client the gallery needs.
type CardService interface {
	FetchAll(ctx context.Context) ([]cards.Card, error)
	Search(ctx context.Context, query string) ([]cards.Card, error)
	Upload(ctx context.Context, filename string, r io.Reader) ([]byte, error)
}

// ViewMode determines which screen is active
type ViewMode int

const (
	GalleryView ViewMode = iota
	DetailView
	UploadModal
)

// Focus tracks which gallery widget receives keys.
type Focus int

const (
	FocusGrid Focus = iota
	FocusSearch
)

type noticeKind int

const (
	noticeInfo noticeKind = iota
	noticeSuccess
	noticeError
)

// notice is a blocking message the user dismisses with any key.
type notice struct {
	text string
	kind noticeKind
}

// User-facing messages.
const (
	msgSelectFile     = "Please select a file!"
	msgUploadSuccess  = "File uploaded successfully!"
	msgUploadFailed   = "File upload failed. Please try again."
	msgNoCards        = "No cards found."
	msgSearchHint     = "Search by name, company, or designation..."
	msgPickerEmptyTip = "Choose an image below and press enter"
)

// =============================================================================
// MESSAGES
// =============================================================================

// cardsLoadedMsg carries the result of a fetch-all or search request.
type cardsLoadedMsg struct {
	seq   uint64
	op    cards.Op
	query string
	cards []cards.Card
	err   error
}

// uploadDoneMsg carries the result of an upload.
type uploadDoneMsg struct {
	seq      uint64
	filename string
	err      error
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the gallery state container. It is owned by the bubbletea program
// and passed by value through Update.
type Model struct {
	// UI components
	search   textinput.Model
	spinner  spinner.Model
	picker   filepicker.Model
	detail   viewport.Model
	body     viewport.Model
	help     help.Model
	keys     keyMap
	styles   ui.Styles
	renderer *glamour.TermRenderer

	mode   ViewMode
	focus  Focus
	width  int
	height int
	ready  bool

	// Card list state
	cards       []cards.Card
	isSearching bool
	currentPage int
	cursor      int
	loading     bool
	err         error

	// Upload flow state
	uploadModalOpen  bool
	selectedFileName string
	selectedFilePath string
	isUploading      bool

	notice *notice

	// Request tracking. Only the latest list/upload result is applied.
	listSeq      uint64
	uploadSeq    uint64
	listCancel   context.CancelFunc
	uploadCancel context.CancelFunc

	initCmd tea.Cmd

	service  CardService
	cfg      Config
	openFile func(path string) (io.ReadCloser, error)

	shutdownCtx    context.Context
	shutdownCancel context.CancelFunc
	shutdownOnce   *sync.Once
}
