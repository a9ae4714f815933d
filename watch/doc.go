// Package watch feeds recordings dropped into a directory through the
// transcription pipeline.
//
// fsnotify Create and Write events are debounced per file, so recordings
// still being copied in are queued only after their writer goes quiet. A
// fixed pool of workers drains the queue; each file is processed
// independently and a failed file never stops the watcher.
//
//	w, err := watch.New(watch.Config{Dir: "/recordings", Language: "sv"}, p)
//	if err != nil {
//		return err
//	}
//	go func() {
//		<-sigCh
//		w.Stop(shutdownCtx)
//	}()
//	return w.Start(ctx)
package watch
