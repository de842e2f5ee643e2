// Package cache provides the soft-limit LRU used by draw extensions for
// their private caches (font faces, measured text widths).
//
//	faces := cache.New[faceKey, font.Face](32)
//	face := faces.GetOrCreate(key, func() font.Face { return newFace(key) })
//
// Cache is safe for concurrent use. It must not be copied after creation
// (it contains a mutex).
package cache
