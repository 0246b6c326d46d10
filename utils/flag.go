// file: utils/flag.go
package utils

import (
	"fmt"
	"strings"

	"github.com/bytehatacademy/alien-recon-portal/config"
	"github.com/google/uuid"
)

// ValidFlagFormat 校验是否符合 PREFIX{...} 模板，入库和提交都要过这一关。
// 注意这里只看外形，正确与否由提交流程逐字比对
func ValidFlagFormat(flag string) bool {
	prefix := config.App.FlagPrefix + "{"
	return strings.HasPrefix(flag, prefix) && strings.HasSuffix(flag, "}") && len(flag) > len(prefix)
}

// GenerateFlag 为新任务生成一个随机 Flag，供管理端建题时使用
func GenerateFlag() string {
	body := strings.Replace(uuid.New().String(), "-", "", -1)[:16]
	return fmt.Sprintf("%s{%s}", config.App.FlagPrefix, body)
}
