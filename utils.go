package main

import (
	"log"
	"time"
)

// loopSafely runs f forever, restarting the loop after a panic.
func loopSafely(name string, f func()) {
	defer func() {
		if v := recover(); v != nil {
			log.Printf("Panic in %v loop: %v, restarting", name, v)
			time.Sleep(time.Second)
			go loopSafely(name, f)
		}
	}()

	for {
		f()
	}
}
