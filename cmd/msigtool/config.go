//版权所有（c）2013-2019 BTCSuite开发者
//此源代码的使用由ISC控制
//可以在许可文件中找到的许可证。

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/btcsuite/btcmultisig/internal/cfgutil"
	"github.com/btcsuite/btcmultisig/netparams"
	"github.com/btcsuite/btcutil"
	flags "github.com/jessevdk/go-flags"
)

const (
	appVersion            = "0.1.0"
	defaultConfigFilename = "msigtool.conf"
	defaultLogLevel       = "info"
	defaultLogDirname     = "logs"
	defaultLogFilename    = "msigtool.log"
	sessionDbName         = "sessions.db"
)

var (
	defaultAppDataDir = btcutil.AppDataDir("msigtool", false)
	defaultConfigFile = filepath.Join(defaultAppDataDir, defaultConfigFilename)
	defaultLogDir     = filepath.Join(defaultAppDataDir, defaultLogDirname)
)

//config是所有命令共享的应用选项。
type config struct {
	ConfigFile  *cfgutil.ExplicitPath `short:"C" long:"configfile" description:"Path to configuration file"`
	ShowVersion bool                  `short:"V" long:"version" description:"Display version information and exit"`
	AppDataDir  *cfgutil.ExplicitPath `short:"A" long:"appdata" description:"Application data directory for config, sessions and logs"`
	TestNet3    bool                  `long:"testnet" description:"Use the test Bitcoin network (version 3) (default mainnet)"`
	RegTest     bool                  `long:"regtest" description:"Use the regression test network (default mainnet)"`
	SimNet      bool                  `long:"simnet" description:"Use the simulation test network (default mainnet)"`
	DebugLevel  string                `short:"d" long:"debuglevel" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical} -- You may also specify <subsystem>=<level>,<subsystem2>=<level>,... to set the log level for individual subsystems -- Use show to list available subsystems"`
	LogDir      string                `long:"logdir" description:"Directory to log output."`
}

var (
	cfg       *config
	activeNet = &netparams.MainNetParams
)

//validLogLevel返回logLevel是否为有效的调试日志级别。
func validLogLevel(logLevel string) bool {
	switch logLevel {
	case "trace", "debug", "info", "warn", "error", "critical":
		return true
	}
	return false
}

//supportedSubsystems返回排序后的子系统标识。
func supportedSubsystems() []string {
	subsystems := make([]string, 0, len(subsystemLoggers))
	for subsysID := range subsystemLoggers {
		subsystems = append(subsystems, subsysID)
	}
	sort.Strings(subsystems)
	return subsystems
}

//parseAndSetDebugLevels解析--debuglevel并设置日志级别。值可以
//是所有子系统共用的一个级别，也可以是逗号分隔的
//子系统=级别对。
func parseAndSetDebugLevels(debugLevel string) error {
	if !strings.Contains(debugLevel, ",") && !strings.Contains(debugLevel, "=") {
		if !validLogLevel(debugLevel) {
			str := "The specified debug level [%v] is invalid"
			return fmt.Errorf(str, debugLevel)
		}
		setLogLevels(debugLevel)
		return nil
	}

	for _, logLevelPair := range strings.Split(debugLevel, ",") {
		if !strings.Contains(logLevelPair, "=") {
			str := "The specified debug level contains an invalid " +
				"subsystem/level pair [%v]"
			return fmt.Errorf(str, logLevelPair)
		}
		fields := strings.Split(logLevelPair, "=")
		subsysID, logLevel := fields[0], fields[1]

		if _, exists := subsystemLoggers[subsysID]; !exists {
			str := "The specified subsystem [%v] is invalid -- " +
				"supported subsystems %v"
			return fmt.Errorf(str, subsysID, supportedSubsystems())
		}
		if !validLogLevel(logLevel) {
			str := "The specified debug level [%v] is invalid"
			return fmt.Errorf(str, logLevel)
		}
		setLogLevel(subsysID, logLevel)
	}
	return nil
}

func defaultConfig() config {
	return config{
		ConfigFile: cfgutil.NewExplicitPath(defaultConfigFile),
		AppDataDir: cfgutil.NewExplicitPath(defaultAppDataDir),
		DebugLevel: defaultLogLevel,
		LogDir:     defaultLogDir,
	}
}

//newParser创建主解析器：先用默认值和配置文件填充选项，
//命令行选项在Parse时覆盖它们。
//
//配置过程如下：
//1）从默认配置开始
//2）预解析命令行，查找另外指定的配置文件
//3）加载配置文件，覆盖默认值
//4）解析命令行选项并执行命令
func newParser() (*flags.Parser, error) {
	c := defaultConfig()

	//预解析只看应用选项，命令和它们的选项留给主解析器。
	preCfg := c
	preParser := flags.NewParser(&preCfg, flags.IgnoreUnknown|flags.PassDoubleDash)
	if _, err := preParser.Parse(); err != nil {
		return nil, errContext(err, "failed to parse command line")
	}

	appName := strings.TrimSuffix(filepath.Base(os.Args[0]), filepath.Ext(os.Args[0]))
	if preCfg.ShowVersion {
		fmt.Println(appName, "version", appVersion)
		os.Exit(0)
	}

	cfg = &c
	parser := flags.NewParser(cfg, flags.HelpFlag|flags.PassDoubleDash)
	configFilePath := preCfg.ConfigFile.Value
	if !preCfg.ConfigFile.ExplicitlySet() && preCfg.AppDataDir.ExplicitlySet() {
		configFilePath = preCfg.AppDataDir.Join(defaultConfigFilename)
	}
	err := flags.NewIniParser(parser).ParseFile(configFilePath)
	if err != nil {
		if _, ok := err.(*os.PathError); !ok {
			return nil, errContext(err, "failed to parse config file "+configFilePath)
		}
		//缺少配置文件不是错误，日志就绪后再报告。
		configFileError = err
	}
	return parser, nil
}

var configFileError error

//setup在命令执行前调用：选择网络、初始化日志并设置日志级别。
func setup() error {
	numNets := 0
	if cfg.TestNet3 {
		activeNet = &netparams.TestNet3Params
		numNets++
	}
	if cfg.RegTest {
		activeNet = &netparams.RegressionNetParams
		numNets++
	}
	if cfg.SimNet {
		activeNet = &netparams.SimNetParams
		numNets++
	}
	if numNets > 1 {
		return fmt.Errorf("setup: the testnet, regtest and simnet params " +
			"can't be used together -- choose one")
	}

	if cfg.AppDataDir.ExplicitlySet() && cfg.LogDir == defaultLogDir {
		cfg.LogDir = cfg.AppDataDir.Join(defaultLogDirname)
	}

	if cfg.DebugLevel == "show" {
		fmt.Println("Supported subsystems", supportedSubsystems())
		os.Exit(0)
	}

	//按网络分开日志目录。
	cfg.LogDir = filepath.Join(cfgutil.ExpandPath(cfg.LogDir), activeNet.DataDirName)
	if err := initLogRotator(filepath.Join(cfg.LogDir, defaultLogFilename)); err != nil {
		return err
	}
	if err := parseAndSetDebugLevels(cfg.DebugLevel); err != nil {
		return fmt.Errorf("setup: %v", err)
	}

	if configFileError != nil {
		log.Debugf("%v", configFileError)
	}
	log.Debugf("Using network %s", activeNet.Name)
	return nil
}

//sessionDbPath返回当前网络的会话数据库路径。
func sessionDbPath() string {
	return cfg.AppDataDir.Join(activeNet.DataDirName, sessionDbName)
}
