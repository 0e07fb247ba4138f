package appconfig

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"pkt.systems/pslog"
)

// Watch reloads the config whenever the file at path changes and hands the
// result to onChange. The containing directory is watched rather than the
// file itself, because editors and WriteDefault replace the file by rename.
// The returned stop function releases the watcher.
func Watch(path string, logger pslog.Logger, onChange func(Config)) (func() error, error) {
	if path == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return nil, err
		}
		path = defaultPath
	}
	path = filepath.Clean(path)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		_ = watcher.Close()
		return nil, err
	}

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != path {
					continue
				}
				if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Rename) {
					continue
				}
				cfg, err := Load(path)
				if err != nil {
					if logger != nil {
						logger.Warn("config reload failed", "path", path, "err", err)
					}
					continue
				}
				if logger != nil {
					logger.Info("config reloaded", "path", path)
				}
				onChange(cfg)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				if logger != nil {
					logger.Warn("config watch error", "path", path, "err", err)
				}
			}
		}
	}()

	return watcher.Close, nil
}
