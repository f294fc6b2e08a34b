package main

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/mdl"
	mdlimage "github.com/gogpu/mdl/internal/image"
)

func TestFlagDefaults(t *testing.T) {
	fs := flag.NewFlagSet("mdl", flag.ContinueOnError)
	fl := defineFlags(fs)
	require.NoError(t, fs.Parse(nil))
	assert.Equal(t, mdl.DefaultWorkers, *fl.workers)
	assert.Equal(t, mdl.DefaultWidth, *fl.width)
	assert.Equal(t, mdl.DefaultFormat, *fl.format)

	require.NoError(t, fs.Parse([]string{"-workers", "3", "-viewer", "none"}))
	assert.Equal(t, 3, *fl.workers)
	assert.Equal(t, "none", *fl.view)
}

func TestCommand(t *testing.T) {
	prog, args, err := command(`convert -delay 3 "two words"`)
	require.NoError(t, err)
	assert.Equal(t, "convert", prog)
	assert.Equal(t, []string{"-delay", "3", "two words"}, args)

	_, _, err = command("   ")
	assert.Error(t, err)
}

func TestConverter(t *testing.T) {
	c, err := converter("", 2)
	require.NoError(t, err)
	assert.Equal(t, mdlimage.EncodeConverter{Scale: 2}, c)

	c, err = converter("magick convert", 1)
	require.NoError(t, err)
	ec, ok := c.(mdlimage.ExecConverter)
	require.True(t, ok)
	assert.Equal(t, "magick", ec.Program)
	assert.Equal(t, []string{"convert"}, ec.Args)
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "box.png")
	src := filepath.Join(dir, "script")
	require.NoError(t, os.WriteFile(src, []byte("box 0 0 0 5 5 5\nsave "+out+"\n"), 0o644))

	require.NoError(t, run(src, []mdl.Option{mdl.WithSize(10, 10)}))
	assert.FileExists(t, out)

	assert.Error(t, run(filepath.Join(dir, "missing"), nil))
}
