package common

const (
	AppId          = "kit"
	AppName        = "Karaf Integration Test Kit"
	MainDir        = "kit"
	HomeDirName    = "home"
	HomeDir        = MainDir + "/" + HomeDirName
	VarDirName     = "var"
	VarDir         = HomeDir + "/" + VarDirName
	ConfigDirName  = "etc"
	ConfigDir      = HomeDir + "/" + ConfigDirName
	LogDirName     = "log"
	LogDir         = VarDir + "/" + LogDirName
	LogFile        = LogDir + "/kit.log"
	CacheDirName   = "cache"
	CacheDir       = HomeDir + "/" + CacheDirName
	TmpDirName     = "tmp"
	TmpDir         = HomeDir + "/" + TmpDirName
)

const (
	OutputValueAll  = "ALL"
	OutputValueNone = "NONE"
)
