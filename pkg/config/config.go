// Package config 搜索相关的配置
//
// Settings 在进程启动时创建一次，显式传入 Pattern 与 Region 的构造，
// 不存在全局可变的设置单例。Manager 负责把 Settings 持久化为 JSON。
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/zoeyai/regionfind/pkg/fail"
)

const (
	// DefaultMinSimilarity 默认最低相似度
	DefaultMinSimilarity = 0.995
	// DefaultFindTimeout 默认查找超时（秒）
	DefaultFindTimeout = 3.1
	// DefaultPollInterval 两次匹配之间的间隔（秒）
	DefaultPollInterval = 1.0
	// DefaultSnapshotQuality 失败截图的 JPEG 质量
	DefaultSnapshotQuality = 70
)

// Settings 搜索配置
type Settings struct {
	MinSimilarity     float64  `json:"min_similarity"`
	ImagePaths        []string `json:"image_paths"`
	FindFailedDir     string   `json:"find_failed_dir"`
	FindTimeout       float64  `json:"find_timeout"`
	PollInterval      float64  `json:"poll_interval"`
	SnapshotQuality   int      `json:"snapshot_quality"`
	AnnotateSnapshots bool     `json:"annotate_snapshots"`
	LogLevel          string   `json:"log_level"`
}

// Default 默认配置
func Default() *Settings {
	return &Settings{
		MinSimilarity:   DefaultMinSimilarity,
		ImagePaths:      []string{},
		FindFailedDir:   filepath.Join(os.TempDir(), "regionfind_find_failed"),
		FindTimeout:     DefaultFindTimeout,
		PollInterval:    DefaultPollInterval,
		SnapshotQuality: DefaultSnapshotQuality,
		LogLevel:        "INFO",
	}
}

// Clone 深拷贝
func (s *Settings) Clone() *Settings {
	c := *s
	c.ImagePaths = append([]string(nil), s.ImagePaths...)
	return &c
}

// AddImagePath 追加图像搜索目录，已存在的目录忽略
func (s *Settings) AddImagePath(dir string) {
	dir = filepath.Clean(dir)
	for _, p := range s.ImagePaths {
		if p == dir {
			return
		}
	}
	s.ImagePaths = append(s.ImagePaths, dir)
}

// FindTimeoutDuration 默认查找超时
func (s *Settings) FindTimeoutDuration() time.Duration {
	return Seconds(s.FindTimeout)
}

// PollIntervalDuration 轮询间隔
func (s *Settings) PollIntervalDuration() time.Duration {
	return Seconds(s.PollInterval)
}

// Validate 检查配置取值
func (s *Settings) Validate() error {
	switch {
	case !(s.MinSimilarity > 0 && s.MinSimilarity <= 1):
		return fail.Usage("Settings.Validate", fail.Args("min_similarity", s.MinSimilarity), "相似度必须在 (0, 1] 之间")
	case !(s.FindTimeout >= 0):
		return fail.Usage("Settings.Validate", fail.Args("find_timeout", s.FindTimeout), "超时不能为负")
	case !(s.PollInterval > 0):
		return fail.Usage("Settings.Validate", fail.Args("poll_interval", s.PollInterval), "轮询间隔必须大于 0")
	case s.SnapshotQuality < 1 || s.SnapshotQuality > 100:
		return fail.Usage("Settings.Validate", fail.Args("snapshot_quality", s.SnapshotQuality), "JPEG 质量必须在 1-100 之间")
	}
	return nil
}

// Seconds 秒数转换为 time.Duration
func Seconds(sec float64) time.Duration {
	return time.Duration(sec * float64(time.Second))
}

// Manager 配置管理器
type Manager struct {
	configDir  string
	configFile string
	mu         sync.RWMutex
}

// NewManager 创建配置管理器，目录为 ~/.regionfind
func NewManager() *Manager {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	return NewManagerWithDir(filepath.Join(homeDir, ".regionfind"))
}

// NewManagerWithDir 使用指定目录创建配置管理器
func NewManagerWithDir(configDir string) *Manager {
	return &Manager{
		configDir:  configDir,
		configFile: filepath.Join(configDir, "config.json"),
	}
}

// Load 加载配置；文件缺失的字段保留默认值
func (m *Manager) Load() (*Settings, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if _, err := os.Stat(m.configFile); os.IsNotExist(err) {
		return Default(), nil
	}

	data, err := os.ReadFile(m.configFile)
	if err != nil {
		return Default(), fmt.Errorf("读取配置文件失败: %w", err)
	}

	s := Default()
	if err := json.Unmarshal(data, s); err != nil {
		return Default(), fmt.Errorf("解析配置文件失败: %w", err)
	}
	if s.ImagePaths == nil {
		s.ImagePaths = []string{}
	}
	return s, nil
}

// Save 保存配置
func (m *Manager) Save(s *Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := os.MkdirAll(m.configDir, 0755); err != nil {
		return fmt.Errorf("创建配置目录失败: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("序列化配置失败: %w", err)
	}

	if err := os.WriteFile(m.configFile, data, 0600); err != nil {
		return fmt.Errorf("写入配置文件失败: %w", err)
	}
	return nil
}

// Clear 删除配置文件
func (m *Manager) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := os.Stat(m.configFile); os.IsNotExist(err) {
		return nil
	}
	return os.Remove(m.configFile)
}

// Exists 检查配置文件是否存在
func (m *Manager) Exists() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, err := os.Stat(m.configFile)
	return err == nil
}

// GetConfigDir 获取配置目录
func (m *Manager) GetConfigDir() string {
	return m.configDir
}

// GetConfigFile 获取配置文件路径
func (m *Manager) GetConfigFile() string {
	return m.configFile
}
