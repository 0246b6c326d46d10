// file: mappers/mission_mapper.go
package mappers

import (
	"github.com/bytehatacademy/alien-recon-portal/dto"
	"github.com/bytehatacademy/alien-recon-portal/models"
	"github.com/bytehatacademy/alien-recon-portal/services"
)

// ToMissionItem 模型转用户可见条目。Flag 字段在这里被丢弃，
// 所有面向用户的任务序列化必须走本包，不许直接 JSON 模型
func ToMissionItem(m models.Mission, status services.MissionStatus) dto.MissionItemResp {
	return dto.MissionItemResp{
		ID:            m.ID,
		Title:         m.Title,
		Description:   m.Description,
		Difficulty:    string(m.Difficulty),
		Category:      string(m.Category),
		Points:        m.Points,
		EstimatedTime: m.EstimatedTime,
		FileURL:       m.FileURL,
		Status:        string(status),
	}
}

func ToMissionDetail(m models.Mission, status services.MissionStatus) dto.MissionDetailResp {
	return dto.MissionDetailResp{
		MissionItemResp:   ToMissionItem(m, status),
		UnlockRequirement: m.UnlockRequirement,
		HintCount:         len(m.Hints),
	}
}

func ToHintResp(h models.Hint, index int) dto.HintResp {
	return dto.HintResp{
		Index:          index,
		Text:           h.Text,
		PointDeduction: h.PointDeduction,
	}
}

// ToAdminMissionItem 管理端条目，携带真实 Flag
func ToAdminMissionItem(m models.Mission) dto.AdminMissionItemResp {
	return dto.AdminMissionItemResp{
		ID:                m.ID,
		Title:             m.Title,
		Difficulty:        string(m.Difficulty),
		Category:          string(m.Category),
		Points:            m.Points,
		Flag:              m.Flag,
		UnlockRequirement: m.UnlockRequirement,
		IsActive:          m.IsActive,
		SortOrder:         m.SortOrder,
		UpdatedAt:         m.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}
