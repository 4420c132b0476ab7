package shared_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andrescamacho/travian-go/internal/domain/shared"
)

func TestIsParseError_SeesThroughWrapping(t *testing.T) {
	err := fmt.Errorf("scanning village: %w", shared.NewParseError("dorf1", "#stockBar", "missing"))

	assert.True(t, shared.IsParseError(err))
	assert.False(t, shared.IsDriverFatal(err))
}

func TestIsDriverFatal_UnwrapsToCause(t *testing.T) {
	cause := errors.New("browser context closed")
	err := fmt.Errorf("capturing overview page: %w", shared.NewDriverFatalError(cause))

	assert.True(t, shared.IsDriverFatal(err))
	assert.ErrorIs(t, err, cause)
}

func TestInfeasiblePlanError_CarriesVillage(t *testing.T) {
	err := shared.NewInfeasiblePlanError(7, "Woodcutter needs clay but the village produces none of it")

	var infeasible *shared.InfeasiblePlanError
	assert.True(t, errors.As(err, &infeasible))
	assert.Equal(t, 7, infeasible.VillageID)
	assert.Contains(t, err.Error(), "Woodcutter")
}
