// file: main_test.go
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"

	"github.com/bytehatacademy/alien-recon-portal/config"
	"github.com/bytehatacademy/alien-recon-portal/database"
	"github.com/bytehatacademy/alien-recon-portal/middlewares"
	"github.com/bytehatacademy/alien-recon-portal/models"
	"github.com/bytehatacademy/alien-recon-portal/routes"
	"github.com/bytehatacademy/alien-recon-portal/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

var router *gin.Engine

// 集成测试需要真实的 MySQL 与 Redis，通过 ARLAB_TEST_DSN 启用；
// 未配置时整组跳过，纯逻辑测试在各包内单独覆盖
func TestMain(m *testing.M) {
	dsn := os.Getenv("ARLAB_TEST_DSN")
	if dsn == "" {
		os.Exit(0)
	}

	gin.SetMode(gin.TestMode)
	config.Load()
	config.App.DatabaseDSN = dsn
	config.App.RankPolicy = config.RankPolicyScore
	config.App.FlagPrefix = "ARLab"

	database.Connect()
	database.MigrateTables()
	database.InitRedis()
	middlewares.InitPrometheus()

	cleanupDatabase()
	router = routes.SetupRouter()

	code := m.Run()

	cleanupDatabase()
	os.Exit(code)
}

func cleanupDatabase() {
	database.DB.Exec("DELETE FROM arlab_flag_log")
	database.DB.Exec("DELETE FROM arlab_activity")
	database.DB.Exec("DELETE FROM arlab_mission_completion")
	database.DB.Exec("DELETE FROM arlab_mission_hint")
	database.DB.Exec("DELETE FROM arlab_mission")
	database.DB.Exec("DELETE FROM arlab_user")
	services.InvalidateLeaderboardCache()
}

func mustCreateUser(t *testing.T, email string) models.User {
	user := models.User{Email: email, Name: "Test Agent", Password: "hunter2hunter2"}
	assert.NoError(t, database.DB.Create(&user).Error)
	return user
}

func mustCreateMission(t *testing.T, id string, points uint, flag string, unlock *string, order uint) models.Mission {
	mission := models.Mission{
		ID:                id,
		Title:             id,
		Description:       "test mission",
		Difficulty:        models.DifficultyBeginner,
		Category:          models.CategoryOSINT,
		Points:            points,
		EstimatedTime:     "30 min",
		Flag:              flag,
		UnlockRequirement: unlock,
		IsActive:          true,
		SortOrder:         order,
	}
	assert.NoError(t, database.DB.Create(&mission).Error)
	return mission
}

func strPtr(s string) *string { return &s }

// 解锁链场景：B 依赖 A，先交 B 被拒，通 A 后 B 放行，重交 A 报重复且分数不变
func TestSubmitFlagUnlockChain(t *testing.T) {
	cleanupDatabase()
	user := mustCreateUser(t, "chain@bytehat.academy")
	mustCreateMission(t, "mission-a", 100, "ARLab{a}", nil, 1)
	mustCreateMission(t, "mission-b", 250, "ARLab{b}", strPtr("mission-a"), 2)
	meta := services.SubmissionMeta{IPAddress: "127.0.0.1"}

	// B 尚未解锁
	_, err := services.SubmitFlag(user.ID, "mission-b", "ARLab{b}", meta)
	assert.ErrorIs(t, err, services.ErrMissionLocked)

	// 通 A
	res, err := services.SubmitFlag(user.ID, "mission-a", "ARLab{a}", meta)
	assert.NoError(t, err)
	assert.Equal(t, uint(100), res.PointsEarned)
	assert.Equal(t, uint(100), res.NewScore)

	// B 解锁后可通
	res, err = services.SubmitFlag(user.ID, "mission-b", "ARLab{b}", meta)
	assert.NoError(t, err)
	assert.Equal(t, uint(350), res.NewScore)

	// 重交 A 报重复，分数不动
	_, err = services.SubmitFlag(user.ID, "mission-a", "ARLab{a}", meta)
	assert.ErrorIs(t, err, services.ErrAlreadyCompleted)

	var fresh models.User
	assert.NoError(t, database.DB.First(&fresh, "id = ?", user.ID).Error)
	assert.Equal(t, uint(350), fresh.Score)

	// 通关记录恰好两条
	var count int64
	database.DB.Model(&models.MissionCompletion{}).Where("user_id = ?", user.ID).Count(&count)
	assert.EqualValues(t, 2, count)
}

// Flag 比对只做首尾去空白，大小写敏感
func TestSubmitFlagExactMatch(t *testing.T) {
	cleanupDatabase()
	user := mustCreateUser(t, "exact@bytehat.academy")
	mustCreateMission(t, "mission-x", 100, "ARLab{Case_Sensitive}", nil, 1)
	meta := services.SubmissionMeta{}

	_, err := services.SubmitFlag(user.ID, "mission-x", "ARLab{case_sensitive}", meta)
	assert.ErrorIs(t, err, services.ErrIncorrectFlag)

	// 错误提交不产生通关记录、不加分
	var fresh models.User
	database.DB.First(&fresh, "id = ?", user.ID)
	assert.Equal(t, uint(0), fresh.Score)

	res, err := services.SubmitFlag(user.ID, "mission-x", "  ARLab{Case_Sensitive}  ", meta)
	assert.NoError(t, err)
	assert.Equal(t, uint(100), res.PointsEarned)

	// attempts 记录了之前的一次错误提交
	var completion models.MissionCompletion
	database.DB.First(&completion, "user_id = ? AND mission_id = ?", user.ID, "mission-x")
	assert.Equal(t, uint(2), completion.Attempts)
}

// 同一 (user, mission) 的并发正确提交只有一个成功，分数只加一次
func TestSubmitFlagConcurrentDuplicate(t *testing.T) {
	cleanupDatabase()
	user := mustCreateUser(t, "race@bytehat.academy")
	mustCreateMission(t, "mission-r", 100, "ARLab{r}", nil, 1)
	meta := services.SubmissionMeta{}

	const workers = 8
	var wg sync.WaitGroup
	accepted := 0
	duplicated := 0
	var mu sync.Mutex

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := services.SubmitFlag(user.ID, "mission-r", "ARLab{r}", meta)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				accepted++
			case err == services.ErrAlreadyCompleted:
				duplicated++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, accepted)
	assert.Equal(t, workers-1, duplicated)

	var count int64
	database.DB.Model(&models.MissionCompletion{}).
		Where("user_id = ? AND mission_id = ?", user.ID, "mission-r").Count(&count)
	assert.EqualValues(t, 1, count)

	var fresh models.User
	database.DB.First(&fresh, "id = ?", user.ID)
	assert.Equal(t, uint(100), fresh.Score)
}

// 跨过 500 分阈值时段位晋升并产生晋升动态
func TestSubmitFlagRankPromotion(t *testing.T) {
	cleanupDatabase()
	user := mustCreateUser(t, "promo@bytehat.academy")
	database.DB.Model(&models.User{}).Where("id = ?", user.ID).Update("score", 499)
	mustCreateMission(t, "mission-p", 1, "ARLab{p}", nil, 1)

	res, err := services.SubmitFlag(user.ID, "mission-p", "ARLab{p}", services.SubmissionMeta{})
	assert.NoError(t, err)
	assert.Equal(t, uint(500), res.NewScore)
	assert.True(t, res.RankChanged)
	assert.Equal(t, models.RankAgent, res.NewRank)

	var fresh models.User
	database.DB.First(&fresh, "id = ?", user.ID)
	assert.Equal(t, models.RankAgent, fresh.Rank)

	var promotions int64
	database.DB.Model(&models.Activity{}).
		Where("user_id = ? AND type = ?", user.ID, models.ActivityRankPromoted).
		Count(&promotions)
	assert.EqualValues(t, 1, promotions)
}

// 下架任务对提交不可见
func TestSubmitFlagInactiveMission(t *testing.T) {
	cleanupDatabase()
	user := mustCreateUser(t, "inactive@bytehat.academy")
	m := mustCreateMission(t, "mission-i", 100, "ARLab{i}", nil, 1)
	database.DB.Model(&m).Update("is_active", false)

	_, err := services.SubmitFlag(user.ID, "mission-i", "ARLab{i}", services.SubmissionMeta{})
	assert.ErrorIs(t, err, services.ErrMissionNotFound)
}

// 下架不占用展示顺序：老任务下架后新任务可复用同一顺序，
// 之后新任务再下架也不会撞约束
func TestMissionDeactivationReusesOrder(t *testing.T) {
	cleanupDatabase()
	old := mustCreateMission(t, "mission-old", 100, "ARLab{old}", nil, 2)
	assert.NoError(t, database.DB.Model(&old).Update("is_active", false).Error)

	// 同一顺序给顶替的新任务
	replacement := mustCreateMission(t, "mission-new", 100, "ARLab{new}", nil, 2)

	taken, err := services.ActiveOrderTaken("someone-else", 2)
	assert.NoError(t, err)
	assert.True(t, taken)
	taken, err = services.ActiveOrderTaken(replacement.ID, 2)
	assert.NoError(t, err)
	assert.False(t, taken)

	// 新任务下架不因老的下架任务而失败
	assert.NoError(t, database.DB.Model(&replacement).Update("is_active", false).Error)

	taken, err = services.ActiveOrderTaken("someone-else", 2)
	assert.NoError(t, err)
	assert.False(t, taken)
}

// 通关记录的 hints_used 统计通关前看过的提示数，同一条提示反复查看只算一次
func TestSubmitFlagRecordsHintsUsed(t *testing.T) {
	cleanupDatabase()
	user := mustCreateUser(t, "hints@bytehat.academy")
	mission := mustCreateMission(t, "mission-hint", 100, "ARLab{hint}", nil, 1)
	other := mustCreateMission(t, "mission-other", 100, "ARLab{other}", nil, 2)

	assert.NoError(t, services.RecordHintUsed(database.DB, user.ID, mission, 0))
	assert.NoError(t, services.RecordHintUsed(database.DB, user.ID, mission, 0))
	assert.NoError(t, services.RecordHintUsed(database.DB, user.ID, mission, 1))
	// 别的任务的提示不掺入统计
	assert.NoError(t, services.RecordHintUsed(database.DB, user.ID, other, 0))

	_, err := services.SubmitFlag(user.ID, mission.ID, "ARLab{hint}", services.SubmissionMeta{})
	assert.NoError(t, err)

	var completion models.MissionCompletion
	assert.NoError(t, database.DB.
		First(&completion, "user_id = ? AND mission_id = ?", user.ID, mission.ID).Error)
	assert.Equal(t, uint(2), completion.HintsUsed)
}

// 走一遍 HTTP 全流程：注册 → 登录 → 列表（Flag 脱敏）→ 提交
func TestHTTPFlow(t *testing.T) {
	cleanupDatabase()
	mustCreateMission(t, "mission-h", 100, "ARLab{http}", nil, 1)

	register := map[string]string{
		"email":    "http@bytehat.academy",
		"name":     "HTTP Agent",
		"password": "hunter2hunter2",
	}
	w := doJSON(t, "POST", "/api/v1/users/register", register, "")
	assert.Equal(t, http.StatusOK, w.Code)

	login := map[string]string{"email": register["email"], "password": register["password"]}
	w = doJSON(t, "POST", "/api/v1/users/login", login, "")
	assert.Equal(t, http.StatusOK, w.Code)

	var loginResp struct {
		Code int `json:"code"`
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &loginResp))
	assert.Equal(t, 0, loginResp.Code)
	token := loginResp.Data.Token

	w = doJSON(t, "GET", "/api/v1/missions", nil, token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "ARLab{http}", "mission list must not leak flags")
	assert.Contains(t, w.Body.String(), "available")

	w = doJSON(t, "POST", "/api/v1/missions/mission-h/submit", map[string]string{"flag": "ARLab{http}"}, token)
	assert.Equal(t, http.StatusOK, w.Code)

	var submitResp struct {
		Code int `json:"code"`
		Data struct {
			PointsEarned uint `json:"points_earned"`
			NewScore     uint `json:"new_score"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &submitResp))
	assert.Equal(t, 0, submitResp.Code)
	assert.Equal(t, uint(100), submitResp.Data.PointsEarned)

	// 网络重试语义：同一请求重放必须报重复而不是二次计分
	w = doJSON(t, "POST", "/api/v1/missions/mission-h/submit", map[string]string{"flag": "ARLab{http}"}, token)
	assert.Equal(t, http.StatusOK, w.Code)
	var dupResp struct {
		Code int `json:"code"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &dupResp))
	assert.Equal(t, 2006, dupResp.Code)
}

func doJSON(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		assert.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}
