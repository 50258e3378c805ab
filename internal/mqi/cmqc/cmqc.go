// Package cmqc carries the MQI constant tables the client depends on and a
// symbol registry mapping the numeric codes back to their mnemonics.
//
// Ownership boundary:
// - numeric constants (completion, reason, options, selectors, commands)
// - structure ids and versions
// - symbolic name <-> numeric code lookup
package cmqc

// Completion codes.
const (
	MQCC_OK      int32 = 0
	MQCC_WARNING int32 = 1
	MQCC_FAILED  int32 = 2
	MQCC_UNKNOWN int32 = -1
)

// Reason codes (MQRC_). The client only names the codes it branches on or
// that commonly come back from a broker; unknown codes still render through
// the fallback path in the error model.
const (
	MQRC_NONE                   int32 = 0
	MQRC_ALREADY_CONNECTED      int32 = 2002
	MQRC_BUFFER_LENGTH_ERROR    int32 = 2005
	MQRC_CONNECTION_BROKEN      int32 = 2009
	MQRC_DATA_LENGTH_ERROR      int32 = 2010
	MQRC_GET_INHIBITED          int32 = 2016
	MQRC_HCONN_ERROR            int32 = 2018
	MQRC_HOBJ_ERROR             int32 = 2019
	MQRC_MSG_TOO_BIG_FOR_Q      int32 = 2030
	MQRC_NO_MSG_AVAILABLE       int32 = 2033
	MQRC_NOT_AUTHORIZED         int32 = 2035
	MQRC_NOT_OPEN_FOR_INPUT     int32 = 2037
	MQRC_NOT_OPEN_FOR_INQUIRE   int32 = 2038
	MQRC_NOT_OPEN_FOR_OUTPUT    int32 = 2039
	MQRC_NOT_OPEN_FOR_SET       int32 = 2040
	MQRC_OBJECT_IN_USE          int32 = 2042
	MQRC_OPTIONS_ERROR          int32 = 2046
	MQRC_PUT_INHIBITED          int32 = 2051
	MQRC_Q_FULL                 int32 = 2053
	MQRC_Q_MGR_NAME_ERROR       int32 = 2058
	MQRC_Q_MGR_NOT_AVAILABLE    int32 = 2059
	MQRC_SELECTOR_ERROR         int32 = 2067
	MQRC_TRUNCATED_MSG_ACCEPTED int32 = 2079
	MQRC_TRUNCATED_MSG_FAILED   int32 = 2080
	MQRC_UNKNOWN_OBJECT_NAME    int32 = 2085
	MQRC_HMSG_ERROR             int32 = 2460
	MQRC_PROPERTY_VALUE_TOO_BIG int32 = 2469
	MQRC_PROPERTY_NOT_AVAILABLE int32 = 2471
	MQRC_SUB_ALREADY_EXISTS     int32 = 2432
	MQRC_NO_SUBSCRIPTION        int32 = 2428
)

// PCF reason codes (MQRCCF_).
const (
	MQRCCF_CFH_TYPE_ERROR    int32 = 3001
	MQRCCF_CFH_LENGTH_ERROR  int32 = 3002
	MQRCCF_CFH_VERSION_ERROR int32 = 3003
	MQRCCF_CFH_COMMAND_ERROR int32 = 3005
	MQRCCF_COMMAND_FAILED    int32 = 3008
	MQRCCF_CFIN_LENGTH_ERROR int32 = 3009
	MQRCCF_CFST_LENGTH_ERROR int32 = 3011
	MQRCCF_Q_NAME_ERROR      int32 = 3076
	MQRCCF_OBJECT_OPEN       int32 = 4010
)

// Structure ids. Always exactly four characters.
const (
	MQMD_STRUC_ID   = "MD  "
	MQOD_STRUC_ID   = "OD  "
	MQGMO_STRUC_ID  = "GMO "
	MQPMO_STRUC_ID  = "PMO "
	MQRFH_STRUC_ID  = "RFH "
	MQSD_STRUC_ID   = "SD  "
	MQSRO_STRUC_ID  = "SRO "
	MQCMHO_STRUC_ID = "CMHO"
	MQPD_STRUC_ID   = "PD  "
	MQSMPO_STRUC_ID = "SMPO"
	MQIMPO_STRUC_ID = "IMPO"
	MQTM_STRUC_ID   = "TM  "
	MQTMC_STRUC_ID  = "TMC "
	MQSCO_STRUC_ID  = "SCO "
)

// Structure versions.
const (
	MQMD_VERSION_1   int32 = 1
	MQOD_VERSION_1   int32 = 1
	MQOD_VERSION_4   int32 = 4
	MQGMO_VERSION_1  int32 = 1
	MQPMO_VERSION_1  int32 = 1
	MQRFH_VERSION_2  int32 = 2
	MQSD_VERSION_1   int32 = 1
	MQSRO_VERSION_1  int32 = 1
	MQCMHO_VERSION_1 int32 = 1
	MQPD_VERSION_1   int32 = 1
	MQSMPO_VERSION_1 int32 = 1
	MQIMPO_VERSION_1 int32 = 1
	MQTM_VERSION_1   int32 = 1
	MQSCO_VERSION_1  int32 = 1

	// MQTMC2 carries its version as a 4-char field.
	MQTMC_VERSION_2 = "   2"
)

// Channel descriptor versions (from the exit header).
const (
	MQCD_VERSION_6  int32 = 6
	MQCD_VERSION_7  int32 = 7
	MQCD_VERSION_8  int32 = 8
	MQCD_VERSION_9  int32 = 9
	MQCD_VERSION_10 int32 = 10
)

// Open options.
const (
	MQOO_INPUT_AS_Q_DEF    int32 = 0x00000001
	MQOO_INPUT_SHARED      int32 = 0x00000002
	MQOO_INPUT_EXCLUSIVE   int32 = 0x00000004
	MQOO_BROWSE            int32 = 0x00000008
	MQOO_OUTPUT            int32 = 0x00000010
	MQOO_INQUIRE           int32 = 0x00000020
	MQOO_SET               int32 = 0x00000040
	MQOO_FAIL_IF_QUIESCING int32 = 0x00002000
)

// Close options.
const (
	MQCO_NONE         int32 = 0
	MQCO_DELETE       int32 = 1
	MQCO_DELETE_PURGE int32 = 2
)

// Object types.
const (
	MQOT_Q       int32 = 1
	MQOT_PROCESS int32 = 3
	MQOT_Q_MGR   int32 = 5
	MQOT_CHANNEL int32 = 6
	MQOT_TOPIC   int32 = 8
)

// Message descriptor defaults.
const (
	MQMT_REQUEST  int32 = 1
	MQMT_REPLY    int32 = 2
	MQMT_REPORT   int32 = 4
	MQMT_DATAGRAM int32 = 8

	MQRO_NONE                   int32 = 0
	MQEI_UNLIMITED              int32 = -1
	MQFB_NONE                   int32 = 0
	MQPRI_PRIORITY_AS_Q_DEF     int32 = -1
	MQPER_NOT_PERSISTENT        int32 = 0
	MQPER_PERSISTENT            int32 = 1
	MQPER_PERSISTENCE_AS_Q_DEF  int32 = 2
	MQAT_NO_CONTEXT             int32 = 0
	MQMF_NONE                   int32 = 0
	MQOL_UNDEFINED              int32 = -1
)

// Numeric encodings. Bits combine integer/decimal/float representations;
// the "normal" (big-endian) family is what the RFH2 codec keys on. Native
// here is the reversed family, see wire.Native.
const (
	MQENC_INTEGER_NORMAL      int32 = 0x00000001
	MQENC_INTEGER_REVERSED    int32 = 0x00000002
	MQENC_DECIMAL_NORMAL      int32 = 0x00000010
	MQENC_DECIMAL_REVERSED    int32 = 0x00000020
	MQENC_FLOAT_IEEE_NORMAL   int32 = 0x00000100
	MQENC_FLOAT_IEEE_REVERSED int32 = 0x00000200
	MQENC_FLOAT_S390          int32 = 0x00000300

	MQENC_NATIVE int32 = MQENC_INTEGER_REVERSED + MQENC_DECIMAL_REVERSED + MQENC_FLOAT_IEEE_REVERSED
	MQENC_NORMAL int32 = MQENC_INTEGER_NORMAL + MQENC_DECIMAL_NORMAL + MQENC_FLOAT_IEEE_NORMAL
)

// Coded character set ids.
const (
	MQCCSI_Q_MGR   int32 = 0
	MQCCSI_INHERIT int32 = -2
	MQCCSI_APPL    int32 = -3
	MQCCSI_UTF8    int32 = 1208
)

// Formats. Always exactly eight characters.
const (
	MQFMT_NONE        = "        "
	MQFMT_STRING      = "MQSTR   "
	MQFMT_RF_HEADER_2 = "MQHRF2  "
)

// Get message options.
const (
	MQGMO_NO_WAIT              int32 = 0x00000000
	MQGMO_WAIT                 int32 = 0x00000001
	MQGMO_SYNCPOINT            int32 = 0x00000002
	MQGMO_NO_SYNCPOINT         int32 = 0x00000004
	MQGMO_BROWSE_FIRST         int32 = 0x00000010
	MQGMO_BROWSE_NEXT          int32 = 0x00000020
	MQGMO_ACCEPT_TRUNCATED_MSG int32 = 0x00000040
	MQGMO_FAIL_IF_QUIESCING    int32 = 0x00002000
	MQGMO_CONVERT              int32 = 0x00004000

	MQMO_NONE            int32 = 0x00000000
	MQMO_MATCH_MSG_ID    int32 = 0x00000001
	MQMO_MATCH_CORREL_ID int32 = 0x00000002

	MQGS_NOT_IN_GROUP  = " "
	MQSS_NOT_A_SEGMENT = " "
	MQSEG_INHIBITED    = " "
	MQRL_UNDEFINED int32 = -1
)

// Put message options.
const (
	MQPMO_NONE               int32 = 0x00000000
	MQPMO_SYNCPOINT          int32 = 0x00000002
	MQPMO_NO_SYNCPOINT       int32 = 0x00000004
	MQPMO_NEW_MSG_ID         int32 = 0x00000040
	MQPMO_NEW_CORREL_ID      int32 = 0x00000080
	MQPMO_FAIL_IF_QUIESCING  int32 = 0x00002000
)

// Connect options.
const (
	MQCNO_NONE int32 = 0
)

// Subscription options. MQSO_NON_DURABLE is the zero default.
const (
	MQSO_NONE              int32 = 0x00000000
	MQSO_NON_DURABLE       int32 = 0x00000000
	MQSO_ALTER             int32 = 0x00000001
	MQSO_CREATE            int32 = 0x00000002
	MQSO_RESUME            int32 = 0x00000004
	MQSO_DURABLE           int32 = 0x00000008
	MQSO_MANAGED           int32 = 0x00000020
	MQSO_FAIL_IF_QUIESCING int32 = 0x00002000

	MQSRO_FAIL_IF_QUIESCING int32 = 0x00002000
)

// Message handle and property constants.
const (
	MQHO_NONE int32 = 0

	MQCMHO_DEFAULT_VALIDATION int32 = 0

	MQPD_NONE             int32 = 0
	MQPD_SUPPORT_OPTIONAL int32 = 1
	MQPD_NO_CONTEXT       int32 = 0
	MQCOPY_DEFAULT        int32 = 0x00000016

	MQSMPO_SET_FIRST int32 = 0
	MQIMPO_INQ_FIRST int32 = 0

	MQTYPE_AS_SET      int32 = 0x00000000
	MQTYPE_BOOLEAN     int32 = 0x00000004
	MQTYPE_BYTE_STRING int32 = 0x00000008
	MQTYPE_INT32       int32 = 0x00000040
	MQTYPE_INT64       int32 = 0x00000080
	MQTYPE_STRING      int32 = 0x00000400

	MQVL_NULL_TERMINATED int32 = -1
	MQVL_EMPTY_STRING    int32 = 0
)

// Integer attribute selectors. The [MQIA_FIRST, MQIA_LAST] range decides
// integer-typed filters and inquiry results.
const (
	MQIA_FIRST             int32 = 1
	MQIA_Q_TYPE            int32 = 20
	MQIA_CURRENT_Q_DEPTH   int32 = 3
	MQIA_DEF_PERSISTENCE   int32 = 5
	MQIA_DEF_PRIORITY      int32 = 6
	MQIA_INHIBIT_GET       int32 = 9
	MQIA_INHIBIT_PUT       int32 = 10
	MQIA_MAX_MSG_LENGTH    int32 = 13
	MQIA_MAX_Q_DEPTH       int32 = 15
	MQIA_OPEN_INPUT_COUNT  int32 = 17
	MQIA_OPEN_OUTPUT_COUNT int32 = 18
	MQIA_COMMAND_LEVEL     int32 = 31
	MQIA_PLATFORM          int32 = 32
	MQIA_LAST              int32 = 2000
)

// Character attribute selectors, [MQCA_FIRST, MQCA_LAST].
const (
	MQCA_FIRST              int32 = 2001
	MQCA_CREATION_DATE      int32 = 2004
	MQCA_CREATION_TIME      int32 = 2005
	MQCA_DEAD_LETTER_Q_NAME int32 = 2006
	MQCA_Q_DESC             int32 = 2013
	MQCA_Q_MGR_DESC         int32 = 2014
	MQCA_Q_MGR_NAME         int32 = 2015
	MQCA_Q_NAME             int32 = 2016
	MQCA_LAST               int32 = 4000
)

// PCF filter operators.
const (
	MQCFOP_LESS         int32 = 1
	MQCFOP_EQUAL        int32 = 2
	MQCFOP_NOT_GREATER  int32 = 3
	MQCFOP_GREATER      int32 = 4
	MQCFOP_NOT_EQUAL    int32 = 5
	MQCFOP_NOT_LESS     int32 = 6
	MQCFOP_CONTAINS     int32 = 10
	MQCFOP_EXCLUDES     int32 = 13
	MQCFOP_LIKE         int32 = 18
	MQCFOP_NOT_LIKE     int32 = 21
	MQCFOP_CONTAINS_GEN int32 = 26
	MQCFOP_EXCLUDES_GEN int32 = 29
)

// PCF command opcodes.
const (
	MQCMD_CHANGE_Q_MGR           int32 = 1
	MQCMD_INQUIRE_Q_MGR          int32 = 2
	MQCMD_CHANGE_Q               int32 = 8
	MQCMD_CLEAR_Q                int32 = 9
	MQCMD_CREATE_Q               int32 = 11
	MQCMD_INQUIRE_Q              int32 = 13
	MQCMD_DELETE_Q               int32 = 16
	MQCMD_RESET_Q_STATS          int32 = 17
	MQCMD_INQUIRE_Q_NAMES        int32 = 18
	MQCMD_INQUIRE_CHANNEL_NAMES  int32 = 20
	MQCMD_INQUIRE_CHANNEL        int32 = 25
	MQCMD_PING_CHANNEL           int32 = 26
	MQCMD_PING_Q_MGR             int32 = 40
	MQCMD_INQUIRE_Q_STATUS       int32 = 41
	MQCMD_INQUIRE_CHANNEL_STATUS int32 = 42
)

// Channel types and transports.
const (
	MQCHT_SENDER    int32 = 1
	MQCHT_SERVER    int32 = 2
	MQCHT_RECEIVER  int32 = 3
	MQCHT_REQUESTER int32 = 4
	MQCHT_CLNTCONN  int32 = 6
	MQCHT_SVRCONN   int32 = 7

	MQXPT_LOCAL int32 = 0
	MQXPT_LU62  int32 = 1
	MQXPT_TCP   int32 = 2
)

// Channel descriptor defaults.
const (
	MQPA_DEFAULT                int32 = 1
	MQCDC_NO_SENDER_CONVERSION  int32 = 0
	MQMCAT_PROCESS              int32 = 1
	MQNPMS_FAST                 int32 = 2
	MQ_EXIT_NAME_LENGTH         int32 = 128
	MQ_EXIT_DATA_LENGTH         int32 = 32
)
