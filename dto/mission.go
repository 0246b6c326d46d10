// file: dto/mission.go
package dto

import "strings"

// ========== 请求 DTO ==========

type CreateMissionReq struct {
	// 规范字段（snake_case）
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	Difficulty        string    `json:"difficulty"` // beginner / intermediate / advanced / expert
	Category          string    `json:"category"`
	Points            uint      `json:"points"`
	EstimatedTime     string    `json:"estimated_time"`
	FileURL           string    `json:"file_url"`
	Flag              string    `json:"flag"`
	UnlockRequirement string    `json:"unlock_requirement"`
	SortOrder         uint      `json:"sort_order"`
	Hints             []HintReq `json:"hints"`

	// 仅用于兼容旧客户端（camelCase 别名），tag 不与上面重复
	EstimatedTimeCamel     string `json:"estimatedTime"`
	FileURLCamel           string `json:"fileUrl"`
	UnlockRequirementCamel string `json:"unlockRequirement"`
	SortOrderCamel         uint   `json:"sortOrder"`
}

type HintReq struct {
	Text           string `json:"text"`
	PointDeduction uint   `json:"point_deduction"`
}

// Normalize 将 camelCase 别名归一化到 snake_case，并做轻量清洗
func (r *CreateMissionReq) Normalize() {
	if r.EstimatedTime == "" && r.EstimatedTimeCamel != "" {
		r.EstimatedTime = r.EstimatedTimeCamel
	}
	if r.FileURL == "" && r.FileURLCamel != "" {
		r.FileURL = r.FileURLCamel
	}
	if r.UnlockRequirement == "" && r.UnlockRequirementCamel != "" {
		r.UnlockRequirement = r.UnlockRequirementCamel
	}
	if r.SortOrder == 0 && r.SortOrderCamel != 0 {
		r.SortOrder = r.SortOrderCamel
	}

	r.ID = strings.TrimSpace(r.ID)
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.Flag = strings.TrimSpace(r.Flag)
	r.UnlockRequirement = strings.TrimSpace(r.UnlockRequirement)
	r.Difficulty = strings.ToLower(strings.TrimSpace(r.Difficulty))

	if r.Difficulty == "" {
		r.Difficulty = "intermediate"
	}
}

type UpdateMissionReq struct {
	Title         *string `json:"title"`
	Description   *string `json:"description"`
	Difficulty    *string `json:"difficulty"`
	Category      *string `json:"category"`
	Points        *uint   `json:"points"`
	EstimatedTime *string `json:"estimated_time"`
	FileURL       *string `json:"file_url"`
	Flag          *string `json:"flag"`
	SortOrder     *uint   `json:"sort_order"`
	IsActive      *bool   `json:"is_active"`
}

type SubmitFlagReq struct {
	Flag string `json:"flag" binding:"required"`
}

func (r *SubmitFlagReq) Normalize() {
	r.Flag = strings.TrimSpace(r.Flag)
}

// ========== 响应 DTO ==========

// MissionItemResp 面向用户的任务条目，永远不携带 Flag
type MissionItemResp struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	Difficulty    string `json:"difficulty"`
	Category      string `json:"category"`
	Points        uint   `json:"points"`
	EstimatedTime string `json:"estimated_time"`
	FileURL       string `json:"file_url,omitempty"`
	Status        string `json:"status"` // locked / available / completed
}

type MissionDetailResp struct {
	MissionItemResp
	UnlockRequirement *string `json:"unlock_requirement,omitempty"`
	HintCount         int     `json:"hint_count"`
}

type HintResp struct {
	Index          int    `json:"index"`
	Text           string `json:"text"`
	PointDeduction uint   `json:"point_deduction"`
}

// AdminMissionItemResp 管理端条目，含 Flag 与启用状态
type AdminMissionItemResp struct {
	ID                string  `json:"id"`
	Title             string  `json:"title"`
	Difficulty        string  `json:"difficulty"`
	Category          string  `json:"category"`
	Points            uint    `json:"points"`
	Flag              string  `json:"flag"`
	UnlockRequirement *string `json:"unlock_requirement,omitempty"`
	IsActive          bool    `json:"is_active"`
	SortOrder         uint    `json:"sort_order"`
	UpdatedAt         string  `json:"updated_at"`
}
