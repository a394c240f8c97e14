package steps

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cucumber/godog"

	domainerror "github.com/finance-tracker/core/internal/domain/error"
)

var errorKinds = map[string]error{
	"NotFound":        domainerror.ErrNotFound,
	"InvalidSplit":    domainerror.ErrInvalidSplit,
	"UpgradeRequired": domainerror.ErrUpgradeRequired,
	"IntegrityError":  domainerror.ErrIntegrity,
	"ValidationError": domainerror.ErrValidation,
}

func registerOutcomeSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the operation should succeed$`, theOperationShouldSucceed)
	ctx.Step(`^the operation should fail with "([^"]*)"$`, theOperationShouldFailWith)
	ctx.Step(`^the error should mention "([^"]*)"$`, theErrorShouldMention)
}

func theOperationShouldSucceed(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return errNoContext
	}
	return tc.requireNoError()
}

func theOperationShouldFailWith(ctx context.Context, kind string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return errNoContext
	}
	target, ok := errorKinds[kind]
	if !ok {
		return fmt.Errorf("unknown error kind %q", kind)
	}
	if !errors.Is(tc.lastErr, target) {
		return fmt.Errorf("expected %s, got %v", kind, tc.lastErr)
	}
	return nil
}

func theErrorShouldMention(ctx context.Context, text string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return errNoContext
	}
	if tc.lastErr == nil {
		return fmt.Errorf("expected an error mentioning %q, got none", text)
	}
	var upgrade *domainerror.UpgradeRequiredError
	if errors.As(tc.lastErr, &upgrade) && strings.Contains(upgrade.Message, text) {
		return nil
	}
	if strings.Contains(tc.lastErr.Error(), text) {
		return nil
	}
	return fmt.Errorf("expected error to mention %q, got %q", text, tc.lastErr.Error())
}
