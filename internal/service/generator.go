package service

import (
	"github.com/passforge/passforge/internal/model"
	"github.com/passforge/passforge/internal/policy"
)

// GeneratorService handles password generation and evaluation requests.
type GeneratorService struct {
	engine *policy.Engine
}

// NewGeneratorService creates a new GeneratorService.
func NewGeneratorService(engine *policy.Engine) *GeneratorService {
	return &GeneratorService{engine: engine}
}

// Generate produces a password based on the given request. Missing class
// flags default to true; an explicit all-false selection is rejected by the engine.
func (s *GeneratorService) Generate(req model.GenerateRequest) (model.GenerateResponse, error) {
	opts := policy.GenerationOptions{Length: req.Length}
	if opts.Length == 0 {
		opts.Length = policy.DefaultLength
	}

	flags := []struct {
		set   *bool
		class policy.CharacterClass
	}{
		{req.Lowercase, policy.Lowercase},
		{req.Uppercase, policy.Uppercase},
		{req.Numbers, policy.Digit},
		{req.Symbols, policy.Symbol},
	}
	for _, f := range flags {
		if boolOrDefault(f.set, true) {
			opts.Classes = opts.Classes.With(f.class)
		}
	}

	generated, err := s.engine.Generate(opts)
	if err != nil {
		return model.GenerateResponse{}, err
	}

	return model.GenerateResponse{
		Password:        generated.Text,
		Length:          generated.Length,
		RequestedLength: generated.RequestedLength,
		Clamped:         generated.Clamped,
		Strength:        generated.Strength,
	}, nil
}

// Strength estimates the strength of an arbitrary password.
func (s *GeneratorService) Strength(req model.StrengthRequest) (policy.Strength, error) {
	if err := policy.CheckLength(req.Password); err != nil {
		return policy.Strength{}, err
	}
	return s.engine.Score(req.Password), nil
}

// Validate checks a password against the request's requirements, or the
// default requirements when none are given.
func (s *GeneratorService) Validate(req model.ValidateRequest) (policy.ValidationResult, error) {
	reqs := policy.DefaultRequirements()
	if req.Requirements != nil {
		reqs = *req.Requirements
	}
	if err := reqs.Check(); err != nil {
		return policy.ValidationResult{}, err
	}
	if err := policy.CheckLength(req.Password); err != nil {
		return policy.ValidationResult{}, err
	}
	return s.engine.Validate(req.Password, reqs), nil
}

// boolOrDefault returns the dereferenced pointer value, or the fallback if nil.
func boolOrDefault(p *bool, fallback bool) bool {
	if p == nil {
		return fallback
	}
	return *p
}
