package softcode

// commandNames lists every command the server knows about, in help-file order.
var commandNames = []string{
	"addcom", "ahelp", "@allhalt", "@allquota", "anews", "@assert", "@atrchown", "@atrlock",
	"attrib_set", "@attribute", "@boot", "@break", "brief", "buy", "@cemit", "@channel", "@chat",
	"@chown", "@chownall", "@chzone", "@chzoneall", "@clist", "@clock", "@clone", "comlist",
	"@command", "comtitle", "@config", "@cpattr", "@create", "@dbck", "@decompile", "delcom",
	"desert", "@destroy", "@dig", "@disable", "dismiss", "doing", "@dolist", "@drain", "drop",
	"@dump", "@edit", "@elock", "@emit", "empty", "@enable", "enter", "@entrances", "@eunlock",
	"examine", "@find", "@firstexit", "@flag", "follow", "@force", "@function", "get", "give", "goto",
	"@grep", "@halt", "help", "@hide", "home", "@hook", "@http", "huh_command", "@ifelse", "@include",
	"inventory", "@kick", "kilt", "leave", "@lemit", "@link", "@list", "@listmotd", "@lock", "@log",
	"@logwipe", "look", "@lset", "@mail", "@malias", "@mapsql", "@message", "@moniker", "@motd",
	"@mvattr", "@name", "@newpassword", "news", "@notify", "@nscemit", "@nsemit", "@nslemit",
	"@nsoemit", "@nspemit", "@nsprompt", "@nsremit", "@nszemit", "@nuke", "@oemit", "@open", "page",
	"@parent", "@password", "@pcreate", "@pemit", "@poll", "@poor", "pose", "@power", "@prompt",
	"@ps", "@purge", "@quota", "@readcache", "@recycle", "@rejectmotd", "@remit", "@respond",
	"@restart", "@retry", "@rwall", "say", "@scan", "score", "@search", "@select", "semipose",
	"session", "@set", "@shutdown", "@sitelock", "@skip", "@slave", "@sockset", "@sql", "@squota",
	"@stats", "@suggest", "@sweep", "@switch", "teach", "@teleport", "think", "@trigger", "@ulock",
	"@undestroy", "unfollow", "unimplemented_command", "@unlink", "@unlock", "@unrecycle", "@uptime",
	"use", "@uunlock", "@verb", "@version", "@wait", "@wall", "@warnings", "warn_on_missing",
	"@wcheck", "@webpasswd", "@whereis", "whisper", "who", "@wipe", "with", "@wizmotd", "@wizwall",
	"@zemit",
}

// functionNames lists every softcode function, in help-file order.
var functionNames = []string{
	"abs", "accent", "accname", "acos", "add", "addrlog", "after", "alias", "align", "allof",
	"alphamax", "alphamin", "and", "andflags", "andlflags", "andlpowers", "ansi", "aposs", "art",
	"asin", "atan", "atan2", "atplace", "atrlock", "attrib_set", "band", "baseconv", "beep", "before",
	"benchmark", "blank2tilde", "bnand", "bnot", "bor", "bound", "brackets", "bxor", "calc", "cand",
	"capstr", "case", "caseall", "cat", "cbuffer", "cbufferadd", "cdesc", "ceil", "cemit", "center",
	"cflags", "channels", "checkpass", "children", "chr", "clflags", "clock", "clone", "cmds",
	"cmogrifier", "cmsgs", "colors", "columns", "comp", "con", "cond", "condall", "config", "conn",
	"connlog", "connrecord", "controls", "convsecs", "convtime", "convutcsecs", "convutctime", "cor",
	"cos", "cowner", "create", "crecall", "csecs", "cstatus", "ctime", "ctitle", "ctu", "cusers",
	"cwho", "dec", "decode64", "decompile", "decompose", "decrypt", "default", "die", "dig", "digest",
	"dist2d", "dist3d", "div", "doing", "dspace2dbref", "e", "edefault", "edit", "element",
	"elements", "elist", "elock", "emit", "encode64", "encrypt", "endtag", "entrances", "eq",
	"escape", "etime", "etimefmt", "eval", "exit", "extract", "fdiv", "filter", "filterbool",
	"findable", "first", "firstof", "flags", "flip", "floor", "floordiv", "fmod", "fn", "fold",
	"folderstats", "followers", "following", "foreach", "formdecode", "fraction", "fullalias",
	"fullname", "functions", "get", "get_eval", "getpids", "grab", "graball", "grep", "grepi", "gt",
	"gte", "hasattr", "hasattrp", "hasattrpval", "hasattrval", "hasflag", "haspower", "hastype",
	"height", "hidden", "hmac", "home", "host", "html", "ibreak", "idle", "if", "ifelse", "ilev",
	"iname", "inc", "index", "inum", "ipaddr", "isdaylight", "isdbref", "isguest", "isint", "isjson",
	"isnum", "isobjid", "isregexp", "isword", "itemize", "items", "iter", "itext", "json", "json_map",
	"json_mod", "json_query", "ladd", "lalign", "land", "last", "lattr", "lattrp", "lcon", "lcstr",
	"lcstr2", "ldelete", "left", "lemit", "~let", "~letlen", "letq", "lexits", "lflags", "link",
	"linsert", "list", "listq", "lit", "ljc", "ljust", "llockflags", "llocks", "lmath", "lmax",
	"lmin", "ln", "lnum", "loc", "localize", "locate", "lock", "lockfilter", "lockflags", "lockowner",
	"locks", "log", "lookup", "lor", "loremipsum", "lparent", "lpids", "lplayers", "lports", "lpos",
	"lreplace", "lsearch", "lsearchr", "lset", "lstats", "lt", "lte", "lthings", "lvcon", "lvexits",
	"lvplayers", "lvthings", "lwho", "lwhoid", "mail", "maildstats", "mailfrom", "mailfstats",
	"maillist", "mailsend", "mailstats", "mailstatus", "mailsubject", "mailtime", "malias", "map",
	"mapsql", "match", "matchall", "max", "mean", "median", "member", "merge", "message", "mid",
	"min", "minimap", "mix", "modulo", "money", "moniker", "msecs", "mtime", "mudname", "mudurl",
	"mul", "munge", "murmur", "mutter", "mwho", "mwhoid", "name", "namecolor", "namegrab",
	"namegraball", "namelist", "nand", "nattr", "nattrp", "ncand", "nchildren", "ncomp", "ncon",
	"ncond", "ncondall", "ncor", "nearby", "neq", "nexits", "next", "nextdbref", "nlsearch", "nmwho",
	"nor", "not", "nplayers", "nscemit", "nsearch", "nsemit", "nslemit", "nsoemit", "nspemit",
	"nsprompt", "nsremit", "nszemit", "nthings", "null", "num", "numversion", "nvcon", "nvexits",
	"nvplayers", "nvthings", "nwho", "obj", "objeval", "objid", "objmem", "oemit", "oob", "open",
	"or", "ord", "ordinal", "orflags", "orlflags", "orlpowers", "owner", "pack", "parent", "pcreate",
	"pemit", "pfun", "pgrep", "pi", "pidinfo", "placeinfo", "places", "player", "playermem", "pmatch",
	"poll", "polltime", "ports", "pos", "poss", "power", "powers", "prompt", "pueblo", "quota", "r",
	"rand", "randextract", "randword", "rbot", "recv", "regedit", "regeditall", "regeditalli",
	"regediti", "registers", "reglattr", "reglattrp", "reglmatch", "reglmatchall", "reglmatchalli",
	"reglmatchi", "regmatch", "regmatchi", "regnattr", "regnattrp", "regrab", "regraball",
	"regraballi", "regrabi", "regrep", "regrepi", "regxattr", "regxattrp", "remainder", "remit",
	"remove", "render", "repeat", "rest", "restarts", "restarttime", "reswitch", "reswitchall",
	"reswitchalli", "reswitchi", "reval", "revwords", "rhymes", "right", "rjc", "rjust", "rloc",
	"rnum", "room", "root", "rot13", "round", "s", "scan", "scramble", "season", "secs", "secscalc",
	"secure", "sent", "set", "setdiff", "setinter", "setq", "setr", "setsymdiff", "setunion", "sha0",
	"shl", "showdate", "showdatetime", "showtime", "shr", "shuffle", "sign", "sin", "slev", "sort",
	"sortby", "sortkey", "soundex", "soundslike", "space", "speak", "spellnum", "splice", "sql",
	"sqlescape", "sqrt", "squish", "ssl", "starttime", "stddev", "step", "stext", "strallof",
	"strcat", "strdelete", "streq", "strfirstof", "stringsecs", "strinsert", "stripaccents",
	"stripansi", "strlen", "strmatch", "strreplace", "sub", "subj", "suggest", "switch", "switchall",
	"t", "table", "tag", "tagwrap", "tan", "tel", "terminfo", "terrain", "testlock", "textentries",
	"textfile", "textsearch", "threeday", "tilde2blank", "time", "timecalc", "timefmt", "timeofday",
	"timestring", "tinyurl", "tr", "trim", "trimpenn", "trimtiny", "trunc", "type", "u", "ucstr",
	"ucstr2", "udefault", "ufun", "ulambda", "uldefault", "ulocal", "unique", "unpack", "unsetq",
	"uptime", "urldecode", "urlencode", "utctime", "v", "vadd", "valid", "vcross", "vdim", "vdot",
	"version", "visible", "vmag", "vmax", "vmin", "vmul", "vsub", "vunit", "where", "whichplace",
	"width", "wildgrep", "wildgrepi", "wipe", "wordpos", "words", "wrap", "wshtml", "wsjson", "xattr",
	"xattrp", "xcon", "xexits", "xget", "xmwho", "xmwhoid", "xor", "xplayers", "xthings", "xvcon",
	"xvexits", "xvplayers", "xvthings", "xwho", "xwhoid", "zemit", "zfun", "zmwho", "zone", "zwho",
}

var commandDocs = map[string]string{
	"@set":      "**Usage:** `@set <object>/<attribute> = <value>`\n\nSets an attribute or flag on an object.\n\n**Example:**\n```mush\n@set me/desc = A cloaked figure\n@set here=WIZARD\n```",
	"@dig":      "**Usage:** `@dig <room name>`\n\nCreates a new room.\n\n**Example:**\n```mush\n@dig Engineering Deck\n```",
	"@create":   "**Usage:** `@create <object name> = <cost>`\n\nCreates a new object. Cost is optional.\n\n**Example:**\n```mush\n@create Phaser = 5\n```",
	"@emit":     "**Usage:** `@emit <message>`\n\nBroadcasts a message to everyone in the current location.\n\n**Example:**\n```mush\n@emit The ship's lights dim suddenly.\n```",
	"@teleport": "**Usage:** `@teleport <object> = <destination>`\n\nMoves an object or player to a new location.\n\n**Example:**\n```mush\n@teleport me = #1234\n```",
	"@pemit":    "**Usage:** `@pemit <target> = <message>`\n\nSends a private message to a player or object.\n\n**Example:**\n```mush\n@pemit #200 = Hello there.\n```",
	"@link":     "**Usage:** `@link <exit> = <destination>`\n\nLinks an exit to a destination room.\n\n**Example:**\n```mush\n@link North = #101\n```",
	"@lock":     "**Usage:** `@lock <object> = <lock expression>`\n\nApplies a lock to an object (room, exit, etc).\n\n**Example:**\n```mush\n@lock door = me\n```",
}

var functionDocs = map[string]string{
	"if":      "**Usage:** `if(condition, true_result, false_result)`\n\nReturns `true_result` if `condition` is true, otherwise `false_result`.\n\n**Example:**\n```mush\nthink {if:{hasflag:%#,WIZARD},Access granted,Access denied}\n```",
	"switch":  "**Usage:** `switch(value, pattern1, result1, ..., default)`\n\nMatches `value` against patterns and returns the matching result.\n\n**Example:**\n```mush\nthink {switch:%0,yes,Affirmative,no,Negative,Unclear}\n```",
	"hasflag": "**Usage:** `hasflag(object, flag)`\n\nChecks if the specified object has a particular flag.\n\n**Example:**\n```mush\n{hasflag:me,WIZARD}\n```",
	"add":     "**Usage:** `add(x, y)`\n\nReturns the sum of `x` and `y`.\n\n**Example:**\n```mush\nthink {add:4,5}\n```",
	"sub":     "**Usage:** `sub(x, y)`\n\nReturns `x - y`.\n\n**Example:**\n```mush\nthink {sub:10,3}\n```",
	"mul":     "**Usage:** `mul(x, y)`\n\nReturns `x * y`.\n\n**Example:**\n```mush\nthink {mul:6,7}\n```",
	"div":     "**Usage:** `div(x, y)`\n\nReturns integer division of `x / y`.\n\n**Example:**\n```mush\nthink {div:10,2}\n```",
	"mod":     "**Usage:** `mod(x, y)`\n\nReturns `x` modulo `y`.\n\n**Example:**\n```mush\nthink {mod:10,3}\n```",
	"eq":      "**Usage:** `eq(x, y)`\n\nReturns true if `x == y`.\n\n**Example:**\n```mush\nthink {eq:5,5}\n```",
	"and":     "**Usage:** `and(x, y)`\n\nLogical AND: returns true only if both values are true.\n\n**Example:**\n```mush\nthink {and:{hasflag:me,WIZARD},{eq:1,1}}\n```",
	"or":      "**Usage:** `or(x, y)`\n\nLogical OR: returns true if either value is true.\n\n**Example:**\n```mush\nthink {or:{eq:1,0},{eq:2,2}}\n```",
	"not":     "**Usage:** `not(x)`\n\nLogical NOT: returns true if `x` is false.\n\n**Example:**\n```mush\nthink {not:{hasflag:me,WIZARD}}\n```",
	"words":   "**Usage:** `words(text)`\n\nReturns the number of words in the string.\n\n**Example:**\n```mush\nthink {words:one two three}\n```",
	"first":   "**Usage:** `first(text)`\n\nReturns the first word from a string.\n\n**Example:**\n```mush\nthink {first:Red Blue Green}\n```",
	"rest":    "**Usage:** `rest(text)`\n\nReturns all words except the first.\n\n**Example:**\n```mush\nthink {rest:Red Blue Green}\n```",
}
