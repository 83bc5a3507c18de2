package handlers

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"impact-game/internal/api/models"
	"impact-game/internal/config"

	"github.com/gin-gonic/gin"
	"gopkg.in/yaml.v3"
)

// GameHandler serves the game presets shipped under examples/games.
type GameHandler struct {
	gameDir string
}

func NewGameHandler() *GameHandler {
	dir := gameDir()
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	return &GameHandler{gameDir: dir}
}

// ListGames handles GET /api/v1/games
func (h *GameHandler) ListGames(c *gin.Context) {
	games := []models.GameInfo{}

	entries, err := os.ReadDir(h.gameDir)
	if err != nil {
		log.Printf("GameHandler: failed to read game directory %s: %v", h.gameDir, err)
		c.JSON(http.StatusOK, gin.H{"games": games})
		return
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		path := filepath.Join(h.gameDir, entry.Name())
		info, err := h.loadGameInfo(path, entry.Name())
		if err != nil {
			log.Printf("GameHandler: failed to load game file %s: %v", path, err)
			continue // Skip invalid files
		}
		games = append(games, *info)
	}

	c.JSON(http.StatusOK, gin.H{"games": games})
}

func (h *GameHandler) loadGameInfo(path, filename string) (*models.GameInfo, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var wrapper struct {
		Game config.GameConfig `yaml:"game"`
	}
	if err := yaml.Unmarshal(raw, &wrapper); err != nil {
		return nil, err
	}

	id := strings.TrimSuffix(filename, ".yaml")
	name := wrapper.Game.Name
	if name == "" {
		name = id
	}

	return &models.GameInfo{
		ID:      id,
		Name:    name,
		File:    path,
		Horizon: wrapper.Game.Horizon,
		Kappa:   wrapper.Game.Kappa,
		PlayerA: models.GameLimits(wrapper.Game.PlayerA),
		PlayerB: models.GameLimits(wrapper.Game.PlayerB),
	}, nil
}
