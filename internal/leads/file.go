package leads

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/shirou/gopsutil/v3/host"
	"go.uber.org/zap"
)

// Dataset is the on-disk JSON layout read by FileProvider.
type Dataset struct {
	Summary  Summary         `json:"summary"`
	Activity []ActivityPoint `json:"activity"`
	Leads    []Lead          `json:"leads"`
}

// FileProvider reads a Dataset from disk. It reloads when the file watcher
// reports a change or when the modification time moves, whichever is seen
// first.
type FileProvider struct {
	Path string

	data    Dataset
	modTime time.Time
	host    HostInfo
	watcher *fileWatcher
}

var ErrInvalidDataset = errors.New("invalid dataset")

// Validate rejects negative counters and scores outside 0-100.
func (d Dataset) Validate() error {
	s := d.Summary
	if s.TotalLeads < 0 || s.CallsMade < 0 || s.MeetingsScheduled < 0 {
		return fmt.Errorf("%w: summary counters must not be negative", ErrInvalidDataset)
	}
	for _, p := range d.Activity {
		if p.Leads < 0 || p.CallsCompleted < 0 {
			return fmt.Errorf("%w: activity %q has a negative count", ErrInvalidDataset, p.Name)
		}
	}
	for _, l := range d.Leads {
		if l.Score < 0 || l.Score > 100 {
			return fmt.Errorf("%w: lead %s score %d is outside 0-100", ErrInvalidDataset, l.ID, l.Score)
		}
	}
	return nil
}

func NewFileProvider(path string) *FileProvider {
	return &FileProvider{Path: path}
}

func (f *FileProvider) Init() error {
	if f.Path == "" {
		return fmt.Errorf("dataset path is empty")
	}
	if err := f.reload(); err != nil {
		return err
	}

	if f.watcher == nil {
		w, err := watchFile(f.Path)
		if err != nil {
			zap.L().Debug("dataset watch unavailable, polling mtime", zap.String("path", f.Path), zap.Error(err))
		} else {
			f.watcher = w
		}
	}

	if info, err := host.Info(); err == nil {
		f.host = HostInfo{Hostname: info.Hostname, Uptime: info.Uptime}
	} else if name, err := os.Hostname(); err == nil {
		f.host = HostInfo{Hostname: name}
	}
	return nil
}

func (f *FileProvider) GetSnapshot() (*Snapshot, error) {
	st, err := os.Stat(f.Path)
	if err != nil {
		return nil, fmt.Errorf("stat dataset: %w", err)
	}
	changed := f.watcher.takeChanged()
	if changed || !st.ModTime().Equal(f.modTime) {
		if err := f.reload(); err != nil {
			if changed {
				f.watcher.markChanged() // retry on the next refresh
			}
			return nil, err
		}
	}

	hostInfo := f.host
	if uptime, err := host.Uptime(); err == nil {
		hostInfo.Uptime = uptime
	}

	return &Snapshot{
		Timestamp: time.Now(),
		Summary:   f.data.Summary,
		Activity:  append([]ActivityPoint(nil), f.data.Activity...),
		Leads:     append([]Lead(nil), f.data.Leads...),
		Host:      hostInfo,
	}, nil
}

func (f *FileProvider) Shutdown() {
	if f.watcher != nil {
		f.watcher.stop()
		f.watcher = nil
	}
}

func (f *FileProvider) reload() error {
	st, err := os.Stat(f.Path)
	if err != nil {
		return fmt.Errorf("stat dataset: %w", err)
	}
	raw, err := os.ReadFile(f.Path)
	if err != nil {
		return fmt.Errorf("read dataset: %w", err)
	}

	var ds Dataset
	if err := json.Unmarshal(raw, &ds); err != nil {
		return fmt.Errorf("decode dataset %s: %w", f.Path, err)
	}
	if err := ds.Validate(); err != nil {
		return fmt.Errorf("load dataset %s: %w", f.Path, err)
	}

	f.data = ds
	f.modTime = st.ModTime()
	return nil
}
