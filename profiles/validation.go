package profiles

import (
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/jrsteele09/mobile-musician-api/catalog"
	apperrors "github.com/jrsteele09/mobile-musician-api/internal/errors"
)

func validateUpdate(req UpdateRequest) error {
	err := validation.ValidateStruct(&req,
		validation.Field(&req.ProfilePicture, is.URL),
		validation.Field(&req.Biography, validation.RuneLength(0, MaxBiographyLength)),
		validation.Field(&req.Latitude, validation.Min(-90.0), validation.Max(90.0)),
		validation.Field(&req.Longitude, validation.Min(-180.0), validation.Max(180.0)),
	)
	return apperrors.AsValidationError(err)
}

var skillLevelIn = func() validation.Rule {
	levels := make([]interface{}, len(catalog.SkillLevels))
	for i, l := range catalog.SkillLevels {
		levels[i] = l
	}
	return validation.In(levels...).Error("must be one of beginner, intermediate, advanced, expert")
}()

func validateSelections(selections []catalog.Selection) error {
	entries := validation.Errors{}
	seen := make(map[string]bool, len(selections))
	for i, s := range selections {
		err := validation.ValidateStruct(&s,
			validation.Field(&s.InstrumentID, validation.Required),
			validation.Field(&s.SkillLevel, validation.Required, skillLevelIn),
		)
		if err == nil && seen[s.InstrumentID] {
			err = validation.Errors{"instrument_id": validation.NewError("validation_duplicate", "instrument listed more than once")}
		}
		seen[s.InstrumentID] = true
		if err != nil {
			entries[strconv.Itoa(i)] = err
		}
	}
	if len(entries) == 0 {
		return nil
	}
	return apperrors.NewValidationError(validation.Errors{"instruments": entries})
}

func validateGenreIDs(ids []string) error {
	entries := validation.Errors{}
	seen := make(map[string]bool, len(ids))
	for i, id := range ids {
		switch {
		case id == "":
			entries[strconv.Itoa(i)] = validation.ErrRequired
		case seen[id]:
			entries[strconv.Itoa(i)] = validation.NewError("validation_duplicate", "genre listed more than once")
		}
		seen[id] = true
	}
	if len(entries) == 0 {
		return nil
	}
	return apperrors.NewValidationError(validation.Errors{"genres": entries})
}
