package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/Mshel/stagesnake/internal/game"
	"github.com/Mshel/stagesnake/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"
)

const (
	maxConnectionsPerIP = 2
)

var (
	ipCounter = make(map[string]int)
	ipMutex   sync.Mutex
)

func getIP(s ssh.Session) string {
	if addr, ok := s.RemoteAddr().(*net.TCPAddr); ok {
		return addr.IP.String()
	}
	return s.RemoteAddr().String()
}

func incrementIP(ip string) {
	ipMutex.Lock()
	defer ipMutex.Unlock()
	ipCounter[ip]++
}

func decrementIP(ip string) {
	ipMutex.Lock()
	defer ipMutex.Unlock()
	ipCounter[ip]--
	if ipCounter[ip] <= 0 {
		delete(ipCounter, ip)
	}
}

func getCount(ip string) int {
	ipMutex.Lock()
	defer ipMutex.Unlock()
	return ipCounter[ip]
}

func connectionLimiterMiddleware(next ssh.Handler) ssh.Handler {
	return func(s ssh.Session) {
		ip := getIP(s)
		currentCount := getCount(ip)

		if currentCount >= maxConnectionsPerIP {
			log.Warn("Connection denied: IP limit exceeded", "ip", ip, "attempted_count", currentCount+1, "current_limit", maxConnectionsPerIP)
			errorMessage := fmt.Sprintf("Too many active connections from your IP (%d/%d). Please try again later.\r\n", currentCount+1, maxConnectionsPerIP)
			s.Write([]byte(errorMessage))
			s.Close()
			return
		}

		incrementIP(ip)
		log.Info("Connection accepted", "ip", ip, "current_count", getCount(ip), "limit", maxConnectionsPerIP)
		next(s)
		decrementIP(ip)
		log.Info("Connection closed and counter decremented", "ip", ip, "count_after", getCount(ip))
	}
}

// sessionFactory builds an independent game for every ssh session on top of
// the shared map cache and run history.
type sessionFactory struct {
	stages []string
	data   *game.DataManager
	scores game.ScoreRecorder
}

func (f sessionFactory) viewHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := sshSession.Pty()

	scenes, err := game.DefaultScenes(f.stages)
	if err != nil {
		log.Error("Could not build scenes for session", "user", sshSession.User(), "error", err)
		return nil, nil
	}

	opts := []game.Option{}
	if f.scores != nil {
		opts = append(opts, game.WithScores(f.scores))
	}
	gameManager := game.NewGameManager(scenes, f.data.Session(), opts...)
	gameManager.PlayerName = sshSession.User()

	controllerModel := ui.NewControllerModel(gameManager, pty.Window.Width, pty.Window.Height)
	return controllerModel, []tea.ProgramOption{tea.WithAltScreen()}
}

func main() {
	cfg := game.LoadConfig()
	host := flag.String("host", "0.0.0.0", "listen host")
	port := flag.String("port", "6996", "listen port")
	flag.StringVar(&cfg.ResourcePath, "resources", cfg.ResourcePath, "directory holding "+game.MapDataDir+"/")
	flag.StringVar(&cfg.DatabasePath, "db", cfg.DatabasePath, "sqlite file for run history, empty to disable")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	flag.StringVar(&cfg.PrivateKeyPath, "host-key", cfg.PrivateKeyPath, "ssh host key path")
	stages := flag.String("stages", "Stage1,Stage2,Stage3", "comma separated stage names in play order")
	flag.Parse()

	if lvl, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(lvl)
	} else {
		log.Warn("Unknown log level, using info", "level", cfg.LogLevel)
	}

	factory := sessionFactory{stages: []string{}}
	for _, name := range strings.Split(*stages, ",") {
		if name = strings.TrimSpace(name); name != "" {
			factory.stages = append(factory.stages, name)
		}
	}

	scenes, err := game.DefaultScenes(factory.stages)
	if err != nil {
		log.Fatal("Invalid stage list", "error", err)
	}
	factory.data = game.NewDataManager(cfg.ResourcePath)
	if err := factory.data.LoadScenes(scenes); err != nil {
		log.Fatal("Failed to load map data", "resources", cfg.ResourcePath, "error", err)
	}

	if cfg.DatabasePath != "" {
		scores, err := game.NewHighScoreService(cfg.DatabasePath)
		if err != nil {
			log.Fatal("Failed to open run history", "db", cfg.DatabasePath, "error", err)
		}
		defer scores.Close()
		factory.scores = scores
	}

	sshServer, serverCreateErr := wish.NewServer(
		wish.WithAddress(net.JoinHostPort(*host, *port)),
		wish.WithHostKeyPath(cfg.PrivateKeyPath),
		wish.WithMiddleware(
			bubbletea.Middleware(factory.viewHandler),
			logging.Middleware(),
			activeterm.Middleware(),
			connectionLimiterMiddleware,
		),
	)
	if serverCreateErr != nil {
		log.Fatal("Failed to create ssh server", "error", serverCreateErr)
	}

	serverDoneChannel := make(chan os.Signal, 1)
	signal.Notify(serverDoneChannel, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	log.Info("Starting SSH server", "host", *host, "port", *port, "stages", factory.data.StageNames())
	go func() {
		if err := sshServer.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			log.Error("Could not start server", "error", err)
			serverDoneChannel <- nil
		}
	}()

	<-serverDoneChannel

	log.Info("Stopping SSH server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := sshServer.Shutdown(ctx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		log.Error("Could not stop server", "error", err)
	}
}
