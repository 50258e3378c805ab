package wire

import (
	"github.com/danmuck/mqlink/internal/mqi/cmqc"
	"github.com/danmuck/mqlink/internal/mqi/codec"
)

// Schema helpers. Field order below is wire order and is contractual.

func long(name string, def int32) codec.Field {
	return codec.Field{Name: name, Default: def, Kind: codec.Long}
}

func longs(name string, def []int32) codec.Field {
	return codec.Field{Name: name, Default: def, Kind: codec.Long, Count: len(def)}
}

func i64(name string, def int64) codec.Field {
	return codec.Field{Name: name, Default: def, Kind: codec.Int64}
}

func char(name, def string, n int) codec.Field {
	return codec.Field{Name: name, Default: def, Kind: codec.Char, Len: n}
}

func bytesN(name string, n int) codec.Field {
	return codec.Field{Name: name, Default: []byte{}, Kind: codec.Bytes, Len: n}
}

func ptr(name string) codec.Field {
	return codec.Field{Name: name, Default: uint64(0), Kind: codec.Ptr}
}

// vsBlock is an MQCHARV quintuple, addressed by Structure.SetVS/GetVS
// through its base name.
func vsBlock(base string) []codec.Field {
	return []codec.Field{
		ptr(base + "VSPtr"),
		long(base+"VSOffset", 0),
		long(base+"VSBufSize", 0),
		long(base+"VSLength", 0),
		long(base+"VSCCSID", cmqc.MQCCSI_APPL),
	}
}

func mdFields(Level) []codec.Field {
	return []codec.Field{
		char("StrucId", cmqc.MQMD_STRUC_ID, 4),
		long("Version", cmqc.MQMD_VERSION_1),
		long("Report", cmqc.MQRO_NONE),
		long("MsgType", cmqc.MQMT_DATAGRAM),
		long("Expiry", cmqc.MQEI_UNLIMITED),
		long("Feedback", cmqc.MQFB_NONE),
		long("Encoding", cmqc.MQENC_NATIVE),
		long("CodedCharSetId", cmqc.MQCCSI_Q_MGR),
		char("Format", cmqc.MQFMT_NONE, 8),
		long("Priority", cmqc.MQPRI_PRIORITY_AS_Q_DEF),
		long("Persistence", cmqc.MQPER_PERSISTENCE_AS_Q_DEF),
		bytesN("MsgId", 24),
		bytesN("CorrelId", 24),
		long("BackoutCount", 0),
		char("ReplyToQ", "", 48),
		char("ReplyToQMgr", "", 48),
		char("UserIdentifier", "", 12),
		bytesN("AccountingToken", 32),
		char("ApplIdentityData", "", 32),
		long("PutApplType", cmqc.MQAT_NO_CONTEXT),
		char("PutApplName", "", 28),
		char("PutDate", "", 8),
		char("PutTime", "", 8),
		char("ApplOriginData", "", 4),
		bytesN("GroupId", 24),
		long("MsgSeqNumber", 1),
		long("Offset", 0),
		long("MsgFlags", cmqc.MQMF_NONE),
		long("OriginalLength", cmqc.MQOL_UNDEFINED),
	}
}

func odFields(level Level) []codec.Field {
	fields := []codec.Field{
		char("StrucId", cmqc.MQOD_STRUC_ID, 4),
		long("Version", cmqc.MQOD_VERSION_1),
		long("ObjectType", cmqc.MQOT_Q),
		char("ObjectName", "", 48),
		char("ObjectQMgrName", "", 48),
		char("DynamicQName", "AMQ.*", 48),
		char("AlternateUserId", "", 12),
		long("RecsPresent", 0),
		long("KnownDestCount", 0),
		long("UnknownDestCount", 0),
		long("InvalidDestCount", 0),
		long("ObjectRecOffset", 0),
		long("ResponseRecOffset", 0),
		ptr("ObjectRecPtr"),
		ptr("ResponseRecPtr"),
		bytesN("AlternateSecurityId", 40),
		char("ResolvedQName", "", 48),
		char("ResolvedQMgrName", "", 48),
	}
	if level >= Level70 {
		fields = append(fields, vsBlock("ObjectString")...)
		fields = append(fields, vsBlock("SelectionString")...)
		fields = append(fields, vsBlock("ResObjectString")...)
		fields = append(fields,
			long("ResolvedType", -3),
			bytesN("pad", 4),
		)
	}
	return fields
}

func gmoFields(level Level) []codec.Field {
	fields := []codec.Field{
		char("StrucId", cmqc.MQGMO_STRUC_ID, 4),
		long("Version", cmqc.MQGMO_VERSION_1),
		long("Options", cmqc.MQGMO_NO_WAIT),
		long("WaitInterval", 0),
		long("Signal1", 0),
		long("Signal2", 0),
		char("ResolvedQName", "", 48),
		long("MatchOptions", cmqc.MQMO_MATCH_MSG_ID|cmqc.MQMO_MATCH_CORREL_ID),
		char("GroupStatus", cmqc.MQGS_NOT_IN_GROUP, 1),
		char("SegmentStatus", cmqc.MQSS_NOT_A_SEGMENT, 1),
		char("Segmentation", cmqc.MQSEG_INHIBITED, 1),
		char("Reserved1", " ", 1),
		bytesN("MsgToken", 16),
		long("ReturnedLength", cmqc.MQRL_UNDEFINED),
	}
	if level >= Level70 {
		fields = append(fields,
			long("Reserved2", 0),
			i64("MsgHandle", int64(cmqc.MQHO_NONE)),
		)
	}
	return fields
}

func pmoFields(level Level) []codec.Field {
	fields := []codec.Field{
		char("StrucId", cmqc.MQPMO_STRUC_ID, 4),
		long("Version", cmqc.MQPMO_VERSION_1),
		long("Options", cmqc.MQPMO_NONE),
		long("Timeout", -1),
		long("Context", 0),
		long("KnownDestCount", 0),
		long("UnknownDestCount", 0),
		long("InvalidDestCount", 0),
		char("ResolvedQName", "", 48),
		char("ResolvedQMgrName", "", 48),
		long("RecsPresent", 0),
		long("PutMsgRecFields", 0),
		long("PutMsgRecOffset", 0),
		long("ResponseRecOffset", 0),
		ptr("PutMsgRecPtr"),
		ptr("ResponseRecPtr"),
	}
	if level >= Level70 {
		fields = append(fields,
			i64("OriginalMsgHandle", int64(cmqc.MQHO_NONE)),
			i64("NewMsgHandle", int64(cmqc.MQHO_NONE)),
			long("Action", 0),
			long("PubLevel", 9),
		)
	}
	return fields
}

func cdVersion(level Level) int32 {
	switch {
	case level >= Level71:
		return cmqc.MQCD_VERSION_10
	case level >= Level70:
		return cmqc.MQCD_VERSION_9
	case level >= Level60:
		return cmqc.MQCD_VERSION_8
	default:
		return cmqc.MQCD_VERSION_7
	}
}

func cdFields(level Level) []codec.Field {
	fields := []codec.Field{
		char("ChannelName", "", 20),
		long("Version", cdVersion(level)),
		long("ChannelType", cmqc.MQCHT_SENDER),
		long("TransportType", cmqc.MQXPT_LU62),
		char("Desc", "", 64),
		char("QMgrName", "", 48),
		char("XmitQName", "", 48),
		char("ShortConnectionName", "", 20),
		char("MCAName", "", 20),
		char("ModeName", "", 8),
		char("TpName", "", 64),
		long("BatchSize", 50),
		long("DiscInterval", 6000),
		long("ShortRetryCount", 10),
		long("ShortRetryInterval", 60),
		long("LongRetryCount", 999999999),
		long("LongRetryInterval", 1200),
		char("SecurityExit", "", 128),
		char("MsgExit", "", 128),
		char("SendExit", "", 128),
		char("ReceiveExit", "", 128),
		long("SeqNumberWrap", 999999999),
		long("MaxMsgLength", 4194304),
		long("PutAuthority", cmqc.MQPA_DEFAULT),
		long("DataConversion", cmqc.MQCDC_NO_SENDER_CONVERSION),
		char("SecurityUserData", "", 32),
		char("MsgUserData", "", 32),
		char("SendUserData", "", 32),
		char("ReceiveUserData", "", 32),
		char("UserIdentifier", "", 12),
		char("Password", "", 12),
		char("MCAUserIdentifier", "", 12),
		long("MCAType", cmqc.MQMCAT_PROCESS),
		char("ConnectionName", "", 264),
		char("RemoteUserIdentifier", "", 12),
		char("RemotePassword", "", 12),
		char("MsgRetryExit", "", 128),
		char("MsgRetryUserData", "", 32),
		long("MsgRetryCount", 10),
		long("MsgRetryInterval", 1000),
		long("HeartbeatInterval", 300),
		long("BatchInterval", 0),
		long("NonPersistentMsgSpeed", cmqc.MQNPMS_FAST),
		long("StrucLength", 0),
		long("ExitNameLength", cmqc.MQ_EXIT_NAME_LENGTH),
		long("ExitDataLength", cmqc.MQ_EXIT_DATA_LENGTH),
		long("MsgExitsDefined", 0),
		long("SendExitsDefined", 0),
		long("ReceiveExitsDefined", 0),
		ptr("MsgExitPtr"),
		ptr("MsgUserDataPtr"),
		ptr("SendExitPtr"),
		ptr("SendUserDataPtr"),
		ptr("ReceiveExitPtr"),
		ptr("ReceiveUserDataPtr"),
		ptr("ClusterPtr"),
		long("ClustersDefined", 0),
		long("NetworkPriority", 0),
		long("LongMCAUserIdLength", 0),
		long("LongRemoteUserIdLength", 0),
		ptr("LongMCAUserIdPtr"),
		ptr("LongRemoteUserIdPtr"),
		bytesN("MCASecurityId", 40),
		bytesN("RemoteSecurityId", 40),
		// >= 5.3
		char("SSLCipherSpec", "", 32),
		ptr("SSLPeerNamePtr"),
		long("SSLPeerNameLength", 0),
		long("SSLClientAuth", 0),
		long("KeepAliveInterval", -1),
	}
	if level >= Level60 {
		fields = append(fields,
			char("LocalAddress", "", 48),
			long("BatchHeartbeat", 0),
			longs("HdrCompList", []int32{0, -1}),
			longs("MsgCompList", []int32{0, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1}),
			long("CLWLChannelRank", 0),
			long("CLWLChannelPriority", 0),
			long("CLWLChannelWeight", 50),
			long("ChannelMonitoring", 0),
			long("ChannelStatistics", 0),
		)
	}
	if level >= Level70 {
		fields = append(fields,
			long("SharingConversations", 10),
			long("PropertyControl", 0),
			long("MaxInstances", 999999999),
			long("MaxInstancesPerClient", 999999999),
			long("ClientChannelWeight", 0),
			long("ConnectionAffinity", 1),
		)
	}
	if level >= Level71 {
		fields = append(fields,
			long("BatchDataLimit", 5000),
			long("UseDLQ", 2),
			long("DefReconnect", 0),
		)
	} else {
		// Pointer alignment pad; versions 10+ are naturally aligned.
		fields = append(fields, bytesN("pad", 4))
	}
	return fields
}

func scoFields(level Level) []codec.Field {
	fields := []codec.Field{
		char("StrucId", cmqc.MQSCO_STRUC_ID, 4),
		long("Version", cmqc.MQSCO_VERSION_1),
		char("KeyRepository", "", 256),
		char("CryptoHardware", "", 256),
		long("AuthInfoRecCount", 0),
		long("AuthInfoRecOffset", 0),
		ptr("AuthInfoRecPtr"),
	}
	if level >= Level60 {
		fields = append(fields,
			long("KeyResetCount", 0),
			long("FipsRequired", 0),
		)
	}
	return fields
}

func sdFields(Level) []codec.Field {
	fields := []codec.Field{
		char("StrucId", cmqc.MQSD_STRUC_ID, 4),
		long("Version", cmqc.MQSD_VERSION_1),
		long("Options", cmqc.MQSO_NON_DURABLE),
		char("ObjectName", "", 48),
		char("AlternateUserId", "", 12),
		bytesN("AlternateSecurityId", 40),
		long("SubExpiry", cmqc.MQEI_UNLIMITED),
	}
	fields = append(fields, vsBlock("ObjectString")...)
	fields = append(fields, vsBlock("SubName")...)
	fields = append(fields, vsBlock("SubUserData")...)
	fields = append(fields,
		bytesN("SubCorrelId", 24),
		long("PubPriority", cmqc.MQPRI_PRIORITY_AS_Q_DEF),
		bytesN("PubAccountingToken", 32),
		char("PubApplIdentityData", "", 32),
	)
	fields = append(fields, vsBlock("SelectionString")...)
	fields = append(fields, long("SubLevel", 1))
	fields = append(fields, vsBlock("ResObjectString")...)
	return fields
}

func sroFields(Level) []codec.Field {
	return []codec.Field{
		char("StrucId", cmqc.MQSRO_STRUC_ID, 4),
		long("Version", cmqc.MQSRO_VERSION_1),
		long("Options", cmqc.MQSRO_FAIL_IF_QUIESCING),
		long("NumPubs", 0),
	}
}

func cmhoFields(Level) []codec.Field {
	return []codec.Field{
		char("StrucId", cmqc.MQCMHO_STRUC_ID, 4),
		long("Version", cmqc.MQCMHO_VERSION_1),
		long("Options", cmqc.MQCMHO_DEFAULT_VALIDATION),
	}
}

func pdFields(Level) []codec.Field {
	return []codec.Field{
		char("StrucId", cmqc.MQPD_STRUC_ID, 4),
		long("Version", cmqc.MQPD_VERSION_1),
		long("Options", cmqc.MQPD_NONE),
		long("Support", cmqc.MQPD_SUPPORT_OPTIONAL),
		long("Context", cmqc.MQPD_NO_CONTEXT),
		long("CopyOptions", cmqc.MQCOPY_DEFAULT),
	}
}

func smpoFields(Level) []codec.Field {
	return []codec.Field{
		char("StrucId", cmqc.MQSMPO_STRUC_ID, 4),
		long("Version", cmqc.MQSMPO_VERSION_1),
		long("Options", cmqc.MQSMPO_SET_FIRST),
		long("ValueEncoding", cmqc.MQENC_NATIVE),
		long("ValueCCSID", cmqc.MQCCSI_APPL),
	}
}

func impoFields(Level) []codec.Field {
	fields := []codec.Field{
		char("StrucId", cmqc.MQIMPO_STRUC_ID, 4),
		long("Version", cmqc.MQIMPO_VERSION_1),
		long("Options", cmqc.MQIMPO_INQ_FIRST),
		long("RequestedEncoding", cmqc.MQENC_NATIVE),
		long("RequestedCCSID", cmqc.MQCCSI_APPL),
		long("ReturnedEncoding", cmqc.MQENC_NATIVE),
		long("ReturnedCCSID", 0),
		long("Reserved1", 0),
	}
	fields = append(fields, vsBlock("ReturnedName")...)
	fields = append(fields, char("TypeString", "", 8))
	return fields
}

func tmFields(Level) []codec.Field {
	return []codec.Field{
		char("StrucId", cmqc.MQTM_STRUC_ID, 4),
		long("Version", cmqc.MQTM_VERSION_1),
		char("QName", "", 48),
		char("ProcessName", "", 48),
		char("TriggerData", "", 64),
		long("ApplType", 0),
		char("ApplId", "", 256),
		char("EnvData", "", 128),
		char("UserData", "", 128),
	}
}

func tmc2Fields(Level) []codec.Field {
	return []codec.Field{
		char("StrucId", cmqc.MQTMC_STRUC_ID, 4),
		char("Version", cmqc.MQTMC_VERSION_2, 4),
		char("QName", "", 48),
		char("ProcessName", "", 48),
		char("TriggerData", "", 64),
		char("ApplType", "", 4),
		char("ApplId", "", 256),
		char("EnvData", "", 128),
		char("UserData", "", 128),
		char("QMgrName", "", 48),
	}
}
