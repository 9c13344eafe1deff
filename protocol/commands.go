package protocol

import (
	"errors"
	"fmt"
)

// Command is the symbolic identifier for one wire command or numeric reply.
// Every Command maps to exactly one wire token and back.
type Command string

var ErrUnknownCommand = errors.New("irc: unknown command")

// Client and server commands (RFC 2812 section 3).
const (
	CmdPassword Command = "password"
	CmdNick     Command = "nick"
	CmdUser     Command = "user"
	CmdOper     Command = "oper"
	CmdMode     Command = "mode"
	CmdService  Command = "service"
	CmdQuit     Command = "quit"
	CmdSquit    Command = "squit"
	CmdJoin     Command = "join"
	CmdPart     Command = "part"
	CmdTopic    Command = "topic"
	CmdNames    Command = "names"
	CmdList     Command = "list"
	CmdInvite   Command = "invite"
	CmdKick     Command = "kick"
	CmdPrivmsg  Command = "privmsg"
	CmdNotice   Command = "notice"
	CmdMotd     Command = "motd"
	CmdLusers   Command = "lusers"
	CmdVersion  Command = "version"
	CmdStats    Command = "stats"
	CmdLinks    Command = "links"
	CmdTime     Command = "time"
	CmdConnect  Command = "connect"
	CmdTrace    Command = "trace"
	CmdAdmin    Command = "admin"
	CmdInfo     Command = "info"
	CmdServlist Command = "servlist"
	CmdSquery   Command = "squery"
	CmdWho      Command = "who"
	CmdWhois    Command = "whois"
	CmdWhowas   Command = "whowas"
	CmdKill     Command = "kill"
	CmdPing     Command = "ping"
	CmdPong     Command = "pong"
	CmdError    Command = "error"
	CmdAway     Command = "away"
	CmdRehash   Command = "rehash"
	CmdDie      Command = "die"
	CmdRestart  Command = "restart"
	CmdSummon   Command = "summon"
	CmdUsers    Command = "users"
	CmdWallops  Command = "wallops"
	CmdUserhost Command = "userhost"
	CmdIson     Command = "ison"
)

// Numeric replies referenced by sequences and the engine. The full numeric
// vocabulary lives in the wire table below; only the commonly matched ones
// get named constants.
const (
	RplWelcome       Command = "rpl_welcome"
	RplYourhost      Command = "rpl_yourhost"
	RplCreated       Command = "rpl_created"
	RplMyinfo        Command = "rpl_myinfo"
	RplBounce        Command = "rpl_bounce"
	RplAway          Command = "rpl_away"
	RplWhoisuser     Command = "rpl_whoisuser"
	RplWhoisserver   Command = "rpl_whoisserver"
	RplWhoisoperator Command = "rpl_whoisoperator"
	RplWhoisidle     Command = "rpl_whoisidle"
	RplWhoischanop   Command = "rpl_whoischanop"
	RplWhoischannels Command = "rpl_whoischannels"
	RplEndofwhois    Command = "rpl_endofwhois"
	RplWhoreply      Command = "rpl_whoreply"
	RplEndofwho      Command = "rpl_endofwho"
	RplNotopic       Command = "rpl_notopic"
	RplTopic         Command = "rpl_topic"
	RplNamreply      Command = "rpl_namreply"
	RplEndofnames    Command = "rpl_endofnames"
	RplMotdstart     Command = "rpl_motdstart"
	RplMotd          Command = "rpl_motd"
	RplEndofmotd     Command = "rpl_endofmotd"

	ErrNosuchnick       Command = "err_nosuchnick"
	ErrNosuchserver     Command = "err_nosuchserver"
	ErrNosuchchannel    Command = "err_nosuchchannel"
	ErrCannotsendtochan Command = "err_cannotsendtochan"
	ErrToomanychannels  Command = "err_toomanychannels"
	ErrToomanytargets   Command = "err_toomanytargets"
	ErrUnknowncommand   Command = "err_unknowncommand"
	ErrNomotd           Command = "err_nomotd"
	ErrNonicknamegiven  Command = "err_nonicknamegiven"
	ErrErroneusnickname Command = "err_erroneusnickname"
	ErrNicknameinuse    Command = "err_nicknameinuse"
	ErrNickcollision    Command = "err_nickcollision"
	ErrNotonchannel     Command = "err_notonchannel"
	ErrNotregistered    Command = "err_notregistered"
	ErrNeedmoreparams   Command = "err_needmoreparams"
	ErrAlreadyregistred Command = "err_alreadyregistred"
	ErrChannelisfull    Command = "err_channelisfull"
	ErrInviteonlychan   Command = "err_inviteonlychan"
	ErrBannedfromchan   Command = "err_bannedfromchan"
	ErrBadchannelkey    Command = "err_badchannelkey"
	ErrBadchanmask      Command = "err_badchanmask"
	ErrRestricted       Command = "err_restricted"
)

// wireToCommand is the single source of truth for the wire vocabulary.
// The reverse table is derived from it at init.
var wireToCommand = map[string]Command{
	"PASSWORD": CmdPassword,
	"NICK":     CmdNick,
	"USER":     CmdUser,
	"OPER":     CmdOper,
	"MODE":     CmdMode,
	"SERVICE":  CmdService,
	"QUIT":     CmdQuit,
	"SQUIT":    CmdSquit,
	"JOIN":     CmdJoin,
	"PART":     CmdPart,
	"TOPIC":    CmdTopic,
	"NAMES":    CmdNames,
	"LIST":     CmdList,
	"INVITE":   CmdInvite,
	"KICK":     CmdKick,
	"PRIVMSG":  CmdPrivmsg,
	"NOTICE":   CmdNotice,
	"MOTD":     CmdMotd,
	"LUSERS":   CmdLusers,
	"VERSION":  CmdVersion,
	"STATS":    CmdStats,
	"LINKS":    CmdLinks,
	"TIME":     CmdTime,
	"CONNECT":  CmdConnect,
	"TRACE":    CmdTrace,
	"ADMIN":    CmdAdmin,
	"INFO":     CmdInfo,
	"SERVLIST": CmdServlist,
	"SQUERY":   CmdSquery,
	"WHO":      CmdWho,
	"WHOIS":    CmdWhois,
	"WHOWAS":   CmdWhowas,
	"KILL":     CmdKill,
	"PING":     CmdPing,
	"PONG":     CmdPong,
	"ERROR":    CmdError,
	"AWAY":     CmdAway,
	"REHASH":   CmdRehash,
	"DIE":      CmdDie,
	"RESTART":  CmdRestart,
	"SUMMON":   CmdSummon,
	"USERS":    CmdUsers,
	"WALLOPS":  CmdWallops,
	"USERHOST": CmdUserhost,
	"ISON":     CmdIson,

	"001": RplWelcome,
	"002": RplYourhost,
	"003": RplCreated,
	"004": RplMyinfo,
	"005": RplBounce,
	"302": "rpl_userhost",
	"303": "rpl_ison",
	"301": RplAway,
	"305": "rpl_unaway",
	"306": "rpl_nowaway",
	"311": RplWhoisuser,
	"312": RplWhoisserver,
	"313": RplWhoisoperator,
	"317": RplWhoisidle,
	"318": RplEndofwhois,
	"319": RplWhoischannels,
	"314": "rpl_whowasuser",
	"369": "rpl_endofwhowas",
	"321": "rpl_liststart",
	"322": "rpl_list",
	"323": "rpl_listend",
	"325": "rpl_uniqopis",
	"324": "rpl_channelmodeis",
	"331": RplNotopic,
	"332": RplTopic,
	"341": "rpl_inviting",
	"342": "rpl_summoning",
	"346": "rpl_invitelist",
	"347": "rpl_endofinvitelist",
	"348": "rpl_exceptlist",
	"349": "rpl_endofexceptlist",
	"351": "rpl_version",
	"352": RplWhoreply,
	"315": RplEndofwho,
	"353": RplNamreply,
	"366": RplEndofnames,
	"364": "rpl_links",
	"365": "rpl_endoflinks",
	"367": "rpl_banlist",
	"368": "rpl_endofbanlist",
	"371": "rpl_info",
	"374": "rpl_endofinfo",
	"375": RplMotdstart,
	"372": RplMotd,
	"376": RplEndofmotd,
	"381": "rpl_youreoper",
	"382": "rpl_rehashing",
	"383": "rpl_youreservice",
	"391": "rpl_time",
	"392": "rpl_usersstart",
	"393": "rpl_users",
	"394": "rpl_endofusers",
	"395": "rpl_nousers",
	"200": "rpl_tracelink",
	"201": "rpl_traceconnecting",
	"202": "rpl_tracehandshake",
	"203": "rpl_traceunknown",
	"204": "rpl_traceoperator",
	"205": "rpl_traceuser",
	"206": "rpl_traceserver",
	"207": "rpl_traceservice",
	"208": "rpl_tracenewtype",
	"209": "rpl_traceclass",
	"210": "rpl_tracereconnect",
	"261": "rpl_tracelog",
	"262": "rpl_traceend",
	"211": "rpl_statslinkinfo",
	"212": "rpl_statscommands",
	"219": "rpl_endofstats",
	"242": "rpl_statsuptime",
	"243": "rpl_statsoline",
	"221": "rpl_umodeis",
	"234": "rpl_servlist",
	"235": "rpl_servlistend",
	"251": "rpl_luserclient",
	"252": "rpl_luserop",
	"253": "rpl_luserunknown",
	"254": "rpl_luserchannels",
	"255": "rpl_luserme",
	"256": "rpl_adminme",
	"257": "rpl_adminloc1",
	"258": "rpl_adminloc2",
	"259": "rpl_adminemail",
	"263": "rpl_tryagain",
	"401": ErrNosuchnick,
	"402": ErrNosuchserver,
	"403": ErrNosuchchannel,
	"404": ErrCannotsendtochan,
	"405": ErrToomanychannels,
	"406": "err_wasnosuchnick",
	"407": ErrToomanytargets,
	"408": "err_nosuchservice",
	"409": "err_noorigin",
	"411": "err_norecipient",
	"412": "err_notexttosend",
	"413": "err_notoplevel",
	"414": "err_wildtoplevel",
	"415": "err_badmask",
	"421": ErrUnknowncommand,
	"422": ErrNomotd,
	"423": "err_noadmininfo",
	"424": "err_fileerror",
	"431": ErrNonicknamegiven,
	"432": ErrErroneusnickname,
	"433": ErrNicknameinuse,
	"436": ErrNickcollision,
	"437": "err_unavailresource",
	"441": "err_usernotinchannel",
	"442": ErrNotonchannel,
	"443": "err_useronchannel",
	"444": "err_nologin",
	"445": "err_summondisabled",
	"446": "err_usersdisabled",
	"451": ErrNotregistered,
	"461": ErrNeedmoreparams,
	"462": ErrAlreadyregistred,
	"463": "err_nopermforhost",
	"464": "err_passwdmismatch",
	"465": "err_yourebannedcreep",
	"466": "err_youwillbebanned",
	"467": "err_keyset",
	"471": ErrChannelisfull,
	"472": "err_unknownmode",
	"473": ErrInviteonlychan,
	"474": ErrBannedfromchan,
	"475": ErrBadchannelkey,
	"476": ErrBadchanmask,
	"477": "err_nochanmodes",
	"478": "err_banlistfull",
	"481": "err_noprivileges",
	"482": "err_chanoprivsneeded",
	"483": "err_cantkillserver",
	"484": ErrRestricted,
	"485": "err_uniqopprivsneeded",
	"491": "err_nooperhost",
	"501": "err_umodeunknownflag",
	"502": "err_usersdontmatch",
	"231": "rpl_serviceinfo",
	"232": "rpl_endofservices",
	"233": "rpl_service",
	"300": "rpl_none",
	"316": RplWhoischanop,
	"361": "rpl_killdone",
	"362": "rpl_closing",
	"363": "rpl_closeend",
	"373": "rpl_infostart",
	"384": "rpl_myportis",
	"213": "rpl_statscline",
	"214": "rpl_statsnline",
	"215": "rpl_statsiline",
	"216": "rpl_statskline",
	"217": "rpl_statsqline",
	"218": "rpl_statsyline",
	"240": "rpl_statsvline",
	"241": "rpl_statslline",
	"244": "rpl_statshline",
	"246": "rpl_statsping",
	"247": "rpl_statsbline",
	"250": "rpl_statsconn",
	"265": "rpl_localusers",
	"266": "rpl_globalusers",
}

var commandToWire = make(map[Command]string, len(wireToCommand))

func init() {
	for wire, cmd := range wireToCommand {
		commandToWire[cmd] = wire
	}
}

// CommandFromWire resolves a wire token (textual command or three-digit
// numeric reply code) to its symbolic command.
func CommandFromWire(token string) (Command, error) {
	cmd, ok := wireToCommand[token]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCommand, token)
	}
	return cmd, nil
}

// Wire returns the wire token for a symbolic command.
func (c Command) Wire() (string, error) {
	wire, ok := commandToWire[c]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCommand, string(c))
	}
	return wire, nil
}
