// Package web holds the page served by the monitor.
package web

import (
	"embed"
	"io/fs"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
)

// DevEnv names the environment variable that makes GetAssets read the page
// from the source tree, so that it can be edited without rebuilding.
const DevEnv = "REDSTONE_MONITOR_DEV"

//go:embed dist/*
var dist embed.FS

// GetAssets returns the files of the monitor page.
func GetAssets() http.FileSystem {
	if dev, _ := strconv.ParseBool(os.Getenv(DevEnv)); dev {
		dir := sourceDir()
		log.Printf("monitor page served from %s", dir)

		return http.Dir(dir)
	}

	sub, err := fs.Sub(dist, "dist")
	if err != nil {
		log.Panic(err)
	}

	return http.FS(sub)
}

func sourceDir() string {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		log.Panic("cannot locate the monitor page sources")
	}

	return filepath.Join(filepath.Dir(file), "dist")
}
