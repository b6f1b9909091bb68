package gallery

import (
	"os"
	"path/filepath"

	"cardgallery/internal/logging"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
)

// openModal shows the upload dialog with a fresh file picker.
func (m Model) openModal() (tea.Model, tea.Cmd) {
	fp := filepicker.New()
	fp.AllowedTypes = m.cfg.Extensions
	fp.CurrentDirectory = m.cfg.StartDir
	if fp.CurrentDirectory == "" {
		if wd, err := os.Getwd(); err == nil {
			fp.CurrentDirectory = wd
		}
	}
	fp.Height = m.pickerHeight()
	fp.Styles.Selected = fp.Styles.Selected.Foreground(m.styles.Theme.Accent)
	fp.Styles.Cursor = fp.Styles.Cursor.Foreground(m.styles.Theme.Accent)

	m.picker = fp
	m.mode = UploadModal
	m.uploadModalOpen = true
	m.selectedFileName = ""
	m.selectedFilePath = ""
	logging.UIDebug("upload dialog opened at %s", fp.CurrentDirectory)
	return m, m.picker.Init()
}

// closeModal hides the dialog and forgets the selected file.
func (m *Model) closeModal() {
	m.mode = GalleryView
	m.uploadModalOpen = false
	m.selectedFileName = ""
	m.selectedFilePath = ""
}

func (m Model) handleModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		// Closing does not abort an upload in flight; its result still
		// reports through a notice.
		m.closeModal()
		return m, nil

	case "u":
		if m.isUploading {
			return m, nil
		}
		if m.selectedFilePath == "" {
			m.notice = &notice{text: msgSelectFile, kind: noticeInfo}
			return m, nil
		}
		return m, m.startUpload()
	}

	if m.isUploading {
		return m, nil
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	if ok, path := m.picker.DidSelectFile(msg); ok {
		m.selectedFilePath = path
		m.selectedFileName = filepath.Base(path)
		logging.UIDebug("selected %s", path)
	}
	if ok, path := m.picker.DidSelectDisabledFile(msg); ok {
		m.notice = &notice{text: filepath.Base(path) + " is not an image file.", kind: noticeInfo}
	}
	return m, cmd
}
