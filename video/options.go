package video

// Option configures a Driver.
type Option func(*Driver)

// WithFFmpeg uses ff for decoding, encoding and muxing.
func WithFFmpeg(ff *FFmpeg) Option {
	return func(d *Driver) {
		d.open = ff.OpenSource
		d.newSink = ff.NewSink
		d.muxer = ff
	}
}

// WithSourceOpener replaces the frame decoder.
func WithSourceOpener(open SourceOpener) Option {
	return func(d *Driver) {
		d.open = open
	}
}

// WithSinkFactory replaces the frame encoder.
func WithSinkFactory(f SinkFactory) Option {
	return func(d *Driver) {
		d.newSink = f
	}
}

// WithMuxer replaces the audio handling.
func WithMuxer(m Muxer) Option {
	return func(d *Driver) {
		d.muxer = m
	}
}

// WithProgress registers fn to be called after every encoded frame.
// fn runs on the converting goroutine.
func WithProgress(fn func(Progress)) Option {
	return func(d *Driver) {
		d.progress = fn
	}
}

// WithKeepTemp keeps the temporary directory of a failed run.
func WithKeepTemp(keep bool) Option {
	return func(d *Driver) {
		d.keepTemp = keep
	}
}

// WithTempDir sets the parent of per-run temporary directories.
// The default is os.TempDir.
func WithTempDir(dir string) Option {
	return func(d *Driver) {
		d.tempDir = dir
	}
}
