// Command place runs a placement script against an avatar without a window
// and prints the resulting WebGAL lines.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/akmonengine/puppet"
	"github.com/akmonengine/puppet/config"
	"github.com/akmonengine/puppet/live2d/headless"
	"github.com/akmonengine/puppet/meta"
	"github.com/akmonengine/puppet/prefs"
	"github.com/akmonengine/puppet/scene"
	"github.com/akmonengine/puppet/script"
)

func main() {
	metaPath := flag.String("meta", "", "Avatar meta file (defaults to the most recently used one)")
	configPath := flag.String("config", "", "Optional adjuster options file")
	scriptPath := flag.String("script", "", "Placement script to run")
	timeout := flag.Duration("timeout", 5*time.Second, "Script time limit")
	flag.Parse()

	store, err := prefs.Open("puppet")
	if err != nil {
		log.Printf("[Place] Warning: %v (prefs kept in memory)", err)
		store = prefs.New(nil)
	}

	path := store.ResolveMeta(*metaPath)
	if path == "" {
		if recent := store.Prefs().RecentMetas; len(recent) > 0 {
			path = recent[0]
		}
	}
	if path == "" {
		log.Fatal("no -meta given and no recently used meta file")
	}

	m, err := meta.Load(path)
	if err != nil {
		log.Fatalf("Failed to load meta: %v", err)
	}

	opts := config.Default()
	if *configPath != "" {
		if opts, err = config.Load(*configPath); err != nil {
			log.Printf("[Place] Warning: %v (using defaults)", err)
		}
	}

	avatar := puppet.New(scene.New(m.Name), m, &headless.Loader{}, opts)
	avatar.Events().Subscribe(puppet.MODEL_MISSING, func(event puppet.Event) {
		e := event.(puppet.ModelMissingEvent)
		fmt.Fprintf(os.Stderr, "missing sub-model %d: %s\n", e.Index, e.Path)
	})
	avatar.CreateModel()
	avatar.Adjust()

	if *scriptPath != "" {
		src, err := os.ReadFile(*scriptPath)
		if err != nil {
			log.Fatalf("Failed to read script: %v", err)
		}
		ctx, cancel := context.WithTimeout(context.Background(), *timeout)
		err = script.Run(ctx, src, avatar)
		cancel()
		if err != nil {
			log.Fatalf("Script failed: %v", err)
		}
	}

	fmt.Println(puppet.TransformText(avatar))
	fmt.Println(puppet.MotionText(avatar))
	if main := avatar.MainPos(); main != nil {
		p := main.Position()
		fmt.Printf("main: %g %g\n", p.X(), p.Y())
	}

	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	store.RememberMeta(filepath.Dir(path), path)
	store.SetUsePivotOffset(opts.UsePivotOffset)
	if err := store.Save(); err != nil {
		log.Printf("[Place] Warning: %v", err)
	}
}
