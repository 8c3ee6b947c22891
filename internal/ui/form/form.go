package form

import (
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gamehorizon/gamehorizon/internal/model"
)

// Defaults for a blank form
const (
	DefaultGenre  = model.GenreAction
	DefaultRating = 3.0
)

// Form is the create/edit state machine. A Form is opened with OpenCreate or
// OpenEdit; discarding it is cancelling.
type Form struct {
	id          model.GameID
	currentYear int

	Title       string
	Genre       model.Genre
	Platforms   []model.Platform
	ReleaseYear int
	Rating      float64
	Completed   bool
	Multiplayer bool

	Errors FieldErrors
}

// OpenCreate returns a blank form
func OpenCreate(currentYear int) *Form {
	return &Form{
		currentYear: currentYear,
		Genre:       DefaultGenre,
		Platforms:   []model.Platform{},
		ReleaseYear: currentYear,
		Rating:      DefaultRating,
	}
}

// OpenEdit returns a form pre-populated from game
func OpenEdit(game model.Game, currentYear int) *Form {
	platforms := make([]model.Platform, 0, len(game.Platforms))
	for _, p := range game.Platforms {
		if !slices.Contains(platforms, p) {
			platforms = append(platforms, p)
		}
	}

	return &Form{
		id:          game.ID,
		currentYear: currentYear,
		Title:       game.Title,
		Genre:       game.Genre,
		Platforms:   platforms,
		ReleaseYear: model.ClampYear(game.ReleaseYear, currentYear),
		Rating:      game.Rating,
		Completed:   game.Completed,
		Multiplayer: game.Multiplayer,
	}
}

// IsEdit reports whether the form edits an existing record
func (f *Form) IsEdit() bool {
	return !f.id.IsZero()
}

// ID returns the id of the record being edited, or zero
func (f *Form) ID() model.GameID {
	return f.id
}

// CurrentYear is the upper bound for the release year
func (f *Form) CurrentYear() int {
	return f.currentYear
}

// Heading returns the form title
func (f *Form) Heading() string {
	if f.IsEdit() {
		return "Edit Game"
	}
	return "Add New Game"
}

// SubmitLabel returns the submit button label
func (f *Form) SubmitLabel() string {
	if f.IsEdit() {
		return "Update Game"
	}
	return "Add Game"
}

// SetTitle replaces the title. Any title error is cleared; the title is
// checked again on submit.
func (f *Form) SetTitle(title string) {
	f.Title = title
	f.Errors.Clear(FieldTitle)
}

// SetGenre replaces the genre
func (f *Form) SetGenre(genre model.Genre) {
	f.Genre = genre
	f.Errors.Clear(FieldGenre)
}

// TogglePlatform checks or unchecks a platform. The platforms error is
// cleared once the selection is non-empty.
func (f *Form) TogglePlatform(p model.Platform, checked bool) {
	if checked {
		if !slices.Contains(f.Platforms, p) {
			f.Platforms = append(f.Platforms, p)
		}
	} else {
		f.Platforms = slices.DeleteFunc(f.Platforms, func(q model.Platform) bool { return q == p })
	}
	f.clearPlatformsIfSelected()
}

// SetPlatforms replaces the whole selection, keeping first occurrences
func (f *Form) SetPlatforms(platforms []model.Platform) {
	selected := make([]model.Platform, 0, len(platforms))
	for _, p := range platforms {
		if !slices.Contains(selected, p) {
			selected = append(selected, p)
		}
	}
	f.Platforms = selected
	f.clearPlatformsIfSelected()
}

func (f *Form) clearPlatformsIfSelected() {
	if len(f.Platforms) > 0 {
		f.Errors.Clear(FieldPlatforms)
	}
}

// SetReleaseYear stores year clamped into [1970, current year]
func (f *Form) SetReleaseYear(year int) {
	f.ReleaseYear = model.ClampYear(year, f.currentYear)
	f.Errors.Clear(FieldReleaseYear)
}

// SetRating stores the rating
func (f *Form) SetRating(rating float64) {
	f.Rating = rating
	f.Errors.Clear(FieldRating)
}

// SetCompleted sets the completed flag
func (f *Form) SetCompleted(completed bool) {
	f.Completed = completed
}

// SetMultiplayer sets the multiplayer flag
func (f *Form) SetMultiplayer(multiplayer bool) {
	f.Multiplayer = multiplayer
}

// Apply updates one field from raw form values, the way a browser posts them.
// Unparseable numbers leave the field unchanged. Unknown fields are ignored.
func (f *Form) Apply(field Field, values []string) {
	first := ""
	if len(values) > 0 {
		first = values[0]
	}

	switch field {
	case FieldTitle:
		f.SetTitle(first)
	case FieldGenre:
		f.SetGenre(model.Genre(first))
	case FieldPlatforms:
		platforms := make([]model.Platform, len(values))
		for i, v := range values {
			platforms[i] = model.Platform(v)
		}
		f.SetPlatforms(platforms)
	case FieldReleaseYear:
		if year, err := strconv.Atoi(strings.TrimSpace(first)); err == nil {
			f.SetReleaseYear(year)
		}
	case FieldRating:
		if rating, err := ParseRating(first); err == nil {
			f.SetRating(rating)
		}
	case FieldCompleted:
		f.SetCompleted(checked(values))
	case FieldMultiplayer:
		f.SetMultiplayer(checked(values))
	}
}

// checked interprets checkbox values; an unchecked box posts nothing
func checked(values []string) bool {
	for _, v := range values {
		switch strings.ToLower(v) {
		case "on", "true", "1", "yes":
			return true
		}
	}
	return false
}

// ParseRating coerces a rating from its text form
func ParseRating(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

// Validate checks the title and platforms, replacing the current errors
func (f *Form) Validate() error {
	errs := FieldErrors{}

	if strings.TrimSpace(f.Title) == "" {
		errs.Set(FieldTitle, MsgTitleRequired)
	}
	if utf8.RuneCountInString(f.Title) > model.MaxTitleLength {
		errs.Set(FieldTitle, MsgTitleTooLong)
	}
	if len(f.Platforms) == 0 {
		errs.Set(FieldPlatforms, MsgPlatformRequired)
	}

	f.Errors = errs
	if errs.Empty() {
		return nil
	}
	return &ValidationError{Fields: errs.clone()}
}

// Submission validates the form and returns the record to send. The id is set
// only when editing, which is what distinguishes update from create.
func (f *Form) Submission() (model.Game, error) {
	if err := f.Validate(); err != nil {
		return model.Game{}, err
	}

	return model.Game{
		ID:          f.id,
		Title:       strings.TrimSpace(f.Title),
		Genre:       f.Genre,
		Platforms:   slices.Clone(f.Platforms),
		ReleaseYear: model.ClampYear(f.ReleaseYear, f.currentYear),
		Rating:      f.Rating,
		Completed:   f.Completed,
		Multiplayer: f.Multiplayer,
	}, nil
}

// HasPlatform reports whether p is checked
func (f *Form) HasPlatform(p model.Platform) bool {
	return slices.Contains(f.Platforms, p)
}

// Clone returns an independent copy, safe to render while the original changes
func (f *Form) Clone() *Form {
	c := *f
	c.Platforms = slices.Clone(f.Platforms)
	c.Errors = f.Errors.clone()
	return &c
}
