// file: services/submission_service.go
package services

import (
	"errors"
	"log"
	"strings"

	"github.com/bytehatacademy/alien-recon-portal/database"
	"github.com/bytehatacademy/alien-recon-portal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// 提交流程的全部业务失败原因，调用方按错误种类分别提示，不得合并
var (
	ErrMissionNotFound  = errors.New("mission not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrMissionLocked    = errors.New("mission locked")
	ErrAlreadyCompleted = errors.New("mission already completed")
	ErrIncorrectFlag    = errors.New("incorrect flag")
)

// SubmissionMeta 提交请求的附加信息，仅用于审计
type SubmissionMeta struct {
	IPAddress string
	UserAgent string
}

type SubmitResult struct {
	PointsEarned uint            `json:"points_earned"`
	NewScore     uint            `json:"new_score"`
	OldRank      models.UserRank `json:"-"`
	NewRank      models.UserRank `json:"new_rank"`
	RankChanged  bool            `json:"rank_changed"`
}

// SubmitFlag 校验 Flag 并落盘通关记录，核心流程固定为：
// 查任务 → 判重 → 判解锁 → 比对 Flag → 写通关记录 → 加分 → 推段位 → 写动态。
// 任何一步失败都在写通关记录之前短路；写记录之后的步骤与它同处一个事务，
// 不会出现加了分没记录、或记了录没加分的中间态
func SubmitFlag(userID, missionID, submittedFlag string, meta SubmissionMeta) (*SubmitResult, error) {
	submitted := strings.TrimSpace(submittedFlag)
	res := &SubmitResult{}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var mission models.Mission
		if err := tx.First(&mission, "id = ? AND is_active = ?", missionID, true).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMissionNotFound
			}
			return err
		}

		// 对用户行加锁：同一用户并发提交不同任务时加分互不丢失
		var user models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&user, "id = ? AND status = ?", userID, models.StatusActive).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		completed, err := CompletedMissionSet(tx, userID)
		if err != nil {
			return err
		}
		if completed[mission.ID] {
			return ErrAlreadyCompleted
		}
		if UnlockStatus(mission, completed) == StatusLocked {
			return ErrMissionLocked
		}

		// 去除首尾空白后逐字比对，大小写敏感，不做其他归一化
		if submitted != mission.Flag {
			return ErrIncorrectFlag
		}

		// 此前的错误提交次数 +1 作为 attempts 快照
		var wrongCount int64
		if err := tx.Model(&models.SubmissionLog{}).
			Where("user_id = ? AND mission_id = ? AND flag_result = ?",
				userID, mission.ID, models.FlagResultWrong).
			Count(&wrongCount).Error; err != nil {
			return err
		}

		// 通关前看过几条提示，按 hint_index 去重，反复查看同一条只算一次
		var hintsUsed int64
		if err := tx.Model(&models.Activity{}).
			Distinct("JSON_EXTRACT(metadata, '$.hint_index')").
			Where("user_id = ? AND type = ?", userID, models.ActivityHintUsed).
			Where(datatypes.JSONQuery("metadata").Equals(mission.ID, "mission_id")).
			Count(&hintsUsed).Error; err != nil {
			return err
		}

		completion := models.MissionCompletion{
			UserID:        userID,
			MissionID:     mission.ID,
			Attempts:      uint(wrongCount) + 1,
			HintsUsed:     uint(hintsUsed),
			PointsEarned:  mission.Points, // 通关时刻快照，任务之后改分不回溯
			FlagSubmitted: submitted,
			IPAddress:     meta.IPAddress,
			UserAgent:     meta.UserAgent,
		}
		if err := tx.Create(&completion).Error; err != nil {
			// 并发双提交由 (user_id, mission_id) 唯一键兜底，统一归为重复完成
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyCompleted
			}
			return err
		}

		// 分数原地自增，不走读改写
		if err := tx.Model(&models.User{}).Where("id = ?", userID).
			Update("score", gorm.Expr("score + ?", mission.Points)).Error; err != nil {
			return err
		}

		// 用户行已锁，本地计算的新分数与库内一致
		newScore := user.Score + mission.Points
		newRank := DeriveRank(newScore, uint(len(completed))+1)

		res.PointsEarned = mission.Points
		res.NewScore = newScore
		res.OldRank = user.Rank
		res.NewRank = newRank

		if newRank != user.Rank {
			res.RankChanged = true
			if err := tx.Model(&models.User{}).Where("id = ?", userID).
				Update("rank", newRank).Error; err != nil {
				return err
			}
			if err := RecordRankPromotion(tx, userID, user.Rank, newRank, newScore); err != nil {
				return err
			}
		}

		return RecordMissionCompleted(tx, userID, mission)
	})

	// 审计流水独立于主事务写入：主事务回滚时错误提交仍要留痕
	logSubmission(userID, missionID, submitted, err, meta)

	if err != nil {
		return nil, err
	}

	// 榜单缓存失效，下次查询回源
	InvalidateLeaderboardCache()
	return res, nil
}

// logSubmission 记录提交流水。只记录到达比对阶段的提交；
// 任务不存在、未解锁等在比对之前就失败的请求不留痕
func logSubmission(userID, missionID, flag string, submitErr error, meta SubmissionMeta) {
	var result models.FlagResult
	switch {
	case submitErr == nil:
		result = models.FlagResultCorrect
	case errors.Is(submitErr, ErrIncorrectFlag):
		result = models.FlagResultWrong
	case errors.Is(submitErr, ErrAlreadyCompleted):
		result = models.FlagResultDuplicate
	default:
		return
	}

	entry := models.SubmissionLog{
		MissionID:     missionID,
		UserID:        userID,
		SubmittedFlag: flag,
		FlagResult:    result,
		IPAddress:     meta.IPAddress,
		UserAgent:     meta.UserAgent,
	}
	if err := database.DB.Create(&entry).Error; err != nil {
		log.Printf("Failed to write submission log: %v", err)
	}
}
