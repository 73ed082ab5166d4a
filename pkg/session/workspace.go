package session

import "sync"

// Workspace remembers the project most recently opened and its directory, the
// base for project-relative file references.
type Workspace struct {
	mu      sync.RWMutex
	project string
	dir     string
}

// SetActive replaces the active project.
func (w *Workspace) SetActive(project, dir string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.project = project
	w.dir = dir
}

// Active returns the active project and its directory.
func (w *Workspace) Active() (project, dir string) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.project, w.dir
}

// ProjectDir returns the directory of the active project.
func (w *Workspace) ProjectDir() string {
	_, dir := w.Active()
	return dir
}

// Clear forgets the active project.
func (w *Workspace) Clear() {
	w.SetActive("", "")
}
