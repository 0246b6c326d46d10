// file: dto/mission_test.go
package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateMissionReqNormalizeAliases(t *testing.T) {
	req := CreateMissionReq{
		ID:                     "  recon-rumble ",
		Title:                  " Recon Rumble ",
		Flag:                   " ARLab{welcome_agent} ",
		EstimatedTimeCamel:     "30 min",
		UnlockRequirementCamel: "intro",
		SortOrderCamel:         3,
	}
	req.Normalize()

	assert.Equal(t, "recon-rumble", req.ID)
	assert.Equal(t, "Recon Rumble", req.Title)
	assert.Equal(t, "ARLab{welcome_agent}", req.Flag)
	assert.Equal(t, "30 min", req.EstimatedTime)
	assert.Equal(t, "intro", req.UnlockRequirement)
	assert.Equal(t, uint(3), req.SortOrder)
	// difficulty 缺省补 intermediate
	assert.Equal(t, "intermediate", req.Difficulty)
}

func TestCreateMissionReqNormalizeSnakeCaseWins(t *testing.T) {
	req := CreateMissionReq{
		EstimatedTime:      "45 min",
		EstimatedTimeCamel: "99 min",
		Difficulty:         "EXPERT",
	}
	req.Normalize()

	assert.Equal(t, "45 min", req.EstimatedTime)
	assert.Equal(t, "expert", req.Difficulty)
}

func TestSubmitFlagReqNormalizeTrims(t *testing.T) {
	req := SubmitFlagReq{Flag: "  ARLab{welcome_agent}\n"}
	req.Normalize()
	assert.Equal(t, "ARLab{welcome_agent}", req.Flag)
}
