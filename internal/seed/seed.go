package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/campuskit/siakad/internal/app/models"
	appRepos "github.com/campuskit/siakad/internal/app/repositories"
	"github.com/campuskit/siakad/internal/pkg/apperrors"
	"github.com/campuskit/siakad/internal/pkg/auth"
)

const (
	defaultAdminEmail    = "admin@kampus.ac.id"
	defaultAdminPassword = "admin12345"
)

// CreateDefaultData seeds the default admin account and a starter faculty
// with one study program so a fresh install is usable immediately. Every
// step is idempotent; existing rows are left alone.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)
	facultyRepo := appRepos.NewFacultyRepository(dbPool)
	programRepo := appRepos.NewProgramRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data...")
	var finalErr error

	if err := seedAdminAccount(ctx, dbPool, userRepo, lgr); err != nil {
		finalErr = errors.Join(finalErr, err)
	}

	engineering := &appModels.Faculty{Name: "Fakultas Teknik", Code: "FT"}
	facultyID, err := facultyRepo.CreateFaculty(ctx, engineering)
	if err != nil {
		if !errors.Is(err, apperrors.ErrFacultyAlreadyExists) {
			lgr.Error().Err(err).Msg("Error creating default faculty")
			return errors.Join(finalErr, err)
		}
		faculties, errGet := facultyRepo.GetAllFaculties(ctx)
		if errGet != nil {
			lgr.Error().Err(errGet).Msg("Error looking up existing default faculty")
			return errors.Join(finalErr, errGet)
		}
		for _, f := range faculties {
			if f.Code == engineering.Code {
				facultyID = f.ID
				break
			}
		}
	}

	if facultyID > 0 {
		program := &appModels.Program{
			FacultyID: facultyID,
			Name:      "Teknik Informatika",
			Code:      "TI",
			Degree:    "S1",
		}
		if _, err := programRepo.CreateProgram(ctx, program); err != nil &&
			!errors.Is(err, apperrors.ErrProgramAlreadyExists) {
			lgr.Error().Err(err).Msg("Error creating default program")
			finalErr = errors.Join(finalErr, err)
		}
	}

	if finalErr == nil {
		lgr.Info().Msg("Default data in place.")
	}
	return finalErr
}

func seedAdminAccount(ctx context.Context, dbPool *pgxpool.Pool, userRepo *appRepos.UserRepository, lgr zerolog.Logger) error {
	exists, err := userRepo.EmailExists(ctx, defaultAdminEmail)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking for default admin account")
		return err
	}
	if exists {
		return nil
	}

	hashed, err := auth.HashPassword(defaultAdminPassword)
	if err != nil {
		return err
	}

	admin := &appModels.User{
		Email:    defaultAdminEmail,
		Password: hashed,
		FullName: "Administrator",
		Role:     appModels.RoleAdmin,
		IsActive: true,
	}
	if _, err := userRepo.CreateUser(ctx, dbPool, admin); err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil
		}
		lgr.Error().Err(err).Msg("Error creating default admin account")
		return err
	}

	lgr.Warn().Str("email", defaultAdminEmail).
		Msg("Default admin account created. Change its password before going live.")
	return nil
}
