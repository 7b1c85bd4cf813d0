package builtins

// coreTable holds the language-portable builtins. Order defines core IDs.
var coreTable = []Descriptor{
	{Name: "__builtin_abs", Type: "ii", Attributes: "ncF", Langs: AllLanguages},
	{Name: "__builtin_trap", Type: "v", Attributes: "nr", Langs: AllLanguages},
	{Name: "__builtin_unreachable", Type: "v", Attributes: "nr", Langs: AllLanguages},
	{Name: "__builtin_expect", Type: "LiLiLi", Attributes: "nc", Langs: AllLanguages},
	{Name: "__builtin_constant_p", Type: "i.", Attributes: "nctu", Langs: AllLanguages},
	{Name: "__builtin_classify_type", Type: "i.", Attributes: "nctu", Langs: AllLanguages},
	{Name: "__builtin_object_size", Type: "zvC*i", Attributes: "nu", Langs: AllLanguages},
	{Name: "__builtin_return_address", Type: "v*IUi", Attributes: "n", Langs: AllLanguages},
	{Name: "__builtin_frame_address", Type: "v*IUi", Attributes: "n", Langs: AllLanguages},
	{Name: "__builtin_setjmp", Type: "iv**", Attributes: "j", Langs: AllLanguages},
	{Name: "__builtin_longjmp", Type: "vv**i", Attributes: "r", Langs: AllLanguages},
	{Name: "__builtin_va_start", Type: "vA.", Attributes: "nt", Langs: AllLanguages},
	{Name: "__builtin_va_end", Type: "vA", Attributes: "n", Langs: AllLanguages},
	{Name: "__builtin_va_copy", Type: "vAA", Attributes: "n", Langs: AllLanguages},
	{Name: "__builtin_isnan", Type: "i.", Attributes: "Fnct", Langs: AllLanguages},
	{Name: "__builtin_fabs", Type: "dd", Attributes: "Fnc", Langs: AllLanguages},
	{Name: "__builtin_sqrt", Type: "dd", Attributes: "Fne", Langs: AllLanguages},
	{Name: "__builtin_memcpy", Type: "v*v*vC*z", Attributes: "nF", Langs: AllLanguages},
	{Name: "__builtin_memset", Type: "v*v*iz", Attributes: "nF", Langs: AllLanguages},
	{Name: "__builtin_strlen", Type: "zcC*", Attributes: "nF", Langs: AllLanguages},
	{Name: "__builtin_strcmp", Type: "icC*cC*", Attributes: "nF", Langs: AllLanguages},
	{Name: "__builtin_printf", Type: "icC*.", Attributes: "Fp:1:", Langs: AllLanguages},
	{Name: "__builtin_vprintf", Type: "icC*a", Attributes: "nFP:1:", Langs: AllLanguages},
	{Name: "__builtin_snprintf", Type: "ic*zcC*.", Attributes: "nFp:3:", Langs: AllLanguages},
	{Name: "__builtin_vsnprintf", Type: "ic*zcC*a", Attributes: "nFP:3:", Langs: AllLanguages},
	{Name: "__builtin_addressof", Type: "v*v&", Attributes: "nct", Langs: AllLanguages},
	{Name: "__builtin_assume_aligned", Type: "v*vC*z.", Attributes: "nc", Langs: AllLanguages},
	{Name: "__clear_cache", Type: "vv*v*", Attributes: "i", Langs: AllLanguages},

	{Name: "abs", Type: "ii", Attributes: "fnc", HeaderName: "stdlib.h", Langs: AllLanguages},
	{Name: "abort", Type: "v", Attributes: "fr", HeaderName: "stdlib.h", Langs: AllLanguages},
	{Name: "exit", Type: "vi", Attributes: "fr", HeaderName: "stdlib.h", Langs: AllLanguages},
	{Name: "malloc", Type: "v*z", Attributes: "f", HeaderName: "stdlib.h", Langs: AllLanguages},
	{Name: "calloc", Type: "v*zz", Attributes: "f", HeaderName: "stdlib.h", Langs: AllLanguages},
	{Name: "free", Type: "vv*", Attributes: "f", HeaderName: "stdlib.h", Langs: AllLanguages},
	{Name: "memcpy", Type: "v*v*vC*z", Attributes: "f", HeaderName: "string.h", Langs: AllLanguages},
	{Name: "memset", Type: "v*v*iz", Attributes: "f", HeaderName: "string.h", Langs: AllLanguages},
	{Name: "strlen", Type: "zcC*", Attributes: "f", HeaderName: "string.h", Langs: AllLanguages},
	{Name: "printf", Type: "icC*.", Attributes: "fp:1:", HeaderName: "stdio.h", Langs: AllLanguages},
	{Name: "fprintf", Type: "iP*cC*.", Attributes: "fp:2:", HeaderName: "stdio.h", Langs: AllLanguages},
	{Name: "vprintf", Type: "icC*a", Attributes: "fP:1:", HeaderName: "stdio.h", Langs: AllLanguages},
	{Name: "scanf", Type: "icC*R.", Attributes: "fs:1:", HeaderName: "stdio.h", Langs: AllLanguages},
	{Name: "sscanf", Type: "icC*RcC*R.", Attributes: "fs:2:", HeaderName: "stdio.h", Langs: AllLanguages},
	{Name: "vfscanf", Type: "iP*RcC*Ra", Attributes: "fS:2:", HeaderName: "stdio.h", Langs: AllLanguages},
	{Name: "setjmp", Type: "iJ", Attributes: "fj", HeaderName: "setjmp.h", Langs: AllLanguages},
	{Name: "longjmp", Type: "vJi", Attributes: "fr", HeaderName: "setjmp.h", Langs: AllLanguages},
	{Name: "sqrt", Type: "dd", Attributes: "fne", HeaderName: "math.h", Langs: AllLanguages},
	{Name: "fabs", Type: "dd", Attributes: "fnc", HeaderName: "math.h", Langs: AllLanguages},
	{Name: "pow", Type: "ddd", Attributes: "fne", HeaderName: "math.h", Langs: AllLanguages},

	{Name: "alloca", Type: "v*z", Attributes: "f", HeaderName: "stdlib.h", Langs: AllGNULanguages},
	{Name: "_exit", Type: "vi", Attributes: "fr", HeaderName: "unistd.h", Langs: AllGNULanguages},
	{Name: "_setjmp", Type: "iJ", Attributes: "fj", HeaderName: "setjmp.h", Langs: AllGNULanguages},
	{Name: "__assume", Type: "vb", Attributes: "n", Langs: AllMSLanguages},
	{Name: "__noop", Type: "i.", Attributes: "n", Langs: AllMSLanguages},
	{Name: "__debugbreak", Type: "v", Attributes: "n", Langs: AllMSLanguages},
	{Name: "_alloca", Type: "v*z", Attributes: "n", Langs: AllMSLanguages},
	{Name: "objc_msgSend", Type: "GGH.", Attributes: "f", HeaderName: "objc/message.h", Langs: LangObjC},
	{Name: "__builtin_operator_new", Type: "v*z", Attributes: "tc", Langs: LangCXX},
	{Name: "__builtin_operator_delete", Type: "vv*", Attributes: "tn", Langs: LangCXX},
	{Name: "read_pipe", Type: "i.", Attributes: "tn", Langs: LangOpenCL},
	{Name: "write_pipe", Type: "i.", Attributes: "tn", Langs: LangOpenCL},
	{Name: "get_pipe_num_packets", Type: "Ui.", Attributes: "tn", Langs: LangOpenCL},
}

// CoreTable returns a copy of the built-in core descriptor table.
func CoreTable() []Descriptor {
	out := make([]Descriptor, len(coreTable))
	copy(out, coreTable)
	return out
}
