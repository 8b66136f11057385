// Package content loads the lesson catalogue.
package content

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/keyquest/internal/model"
	"github.com/verte-zerg/keyquest/internal/wordlist"
)

// ErrLessonNotFound is returned when a world or level does not exist.
var ErrLessonNotFound = errors.New("lesson not found")

//go:embed lessons.toml
var embeddedLessons string

type catalogFile struct {
	Worlds []worldFile `toml:"world"`
}

type worldFile struct {
	ID     string      `toml:"id"`
	Title  string      `toml:"title"`
	Levels []levelFile `toml:"level"`
}

type levelFile struct {
	ID          string            `toml:"id"`
	Title       string            `toml:"title"`
	Story       string            `toml:"story"`
	Words       []string          `toml:"words"`
	Definitions map[string]string `toml:"definitions"`
}

// World is a themed group of lessons.
type World struct {
	ID     string
	Title  string
	Levels []model.Lesson
}

// Catalog holds every known lesson, keyed by world then level.
type Catalog struct {
	worlds []World
	index  map[string]model.Lesson
}

// LoadEmbedded parses the built-in catalogue.
func LoadEmbedded() (*Catalog, error) {
	c := &Catalog{index: map[string]model.Lesson{}}
	if err := c.merge(embeddedLessons, "embedded"); err != nil {
		return nil, err
	}
	return c, nil
}

// Load parses the built-in catalogue and then the optional user file at
// path. User levels replace built-in levels with the same world and id.
// A missing user file is not an error.
func Load(path string) (*Catalog, error) {
	c, err := LoadEmbedded()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return c, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return nil, fmt.Errorf("failed to read lessons: %w", err)
	}
	if err := c.merge(string(data), path); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) merge(data, source string) error {
	var file catalogFile
	if _, err := toml.Decode(data, &file); err != nil {
		return fmt.Errorf("failed to decode lessons %s: %w", source, err)
	}
	for _, wf := range file.Worlds {
		if wf.ID == "" {
			return fmt.Errorf("lessons %s: world without id", source)
		}
		world := c.world(wf.ID, wf.Title)
		for _, lf := range wf.Levels {
			if lf.ID == "" {
				return fmt.Errorf("lessons %s: level without id in world %s", source, wf.ID)
			}
			if len(lf.Words) == 0 {
				return fmt.Errorf("lessons %s: level %s/%s has no words", source, wf.ID, lf.ID)
			}
			for _, word := range lf.Words {
				if !wordlist.Letters(word) {
					return fmt.Errorf("lessons %s: level %s/%s word %q must contain only letters", source, wf.ID, lf.ID, word)
				}
			}
			lesson := model.Lesson{
				WorldID:     wf.ID,
				LevelID:     lf.ID,
				Title:       lf.Title,
				Words:       lf.Words,
				Story:       lf.Story,
				Definitions: lf.Definitions,
			}
			if _, ok := c.index[lesson.ID()]; ok {
				world.replace(lesson)
			} else {
				world.Levels = append(world.Levels, lesson)
			}
			c.index[lesson.ID()] = lesson
		}
	}
	return nil
}

func (c *Catalog) world(id, title string) *World {
	for i := range c.worlds {
		if c.worlds[i].ID == id {
			if title != "" {
				c.worlds[i].Title = title
			}
			return &c.worlds[i]
		}
	}
	c.worlds = append(c.worlds, World{ID: id, Title: title})
	return &c.worlds[len(c.worlds)-1]
}

func (w *World) replace(lesson model.Lesson) {
	for i := range w.Levels {
		if w.Levels[i].LevelID == lesson.LevelID {
			w.Levels[i] = lesson
			return
		}
	}
}

// Lesson returns one lesson definition or ErrLessonNotFound.
func (c *Catalog) Lesson(ctx context.Context, world, level string) (model.Lesson, error) {
	if err := ctx.Err(); err != nil {
		return model.Lesson{}, err
	}
	lesson, ok := c.index[world+"/"+level]
	if !ok {
		return model.Lesson{}, fmt.Errorf("%w: %s/%s", ErrLessonNotFound, world, level)
	}
	return lesson, nil
}

// Worlds returns the worlds in catalogue order.
func (c *Catalog) Worlds() []World {
	out := make([]World, len(c.worlds))
	copy(out, c.worlds)
	return out
}

// IDs returns every lesson id, sorted.
func (c *Catalog) IDs() []string {
	ids := make([]string, 0, len(c.index))
	for id := range c.index {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
